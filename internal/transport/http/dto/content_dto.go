package dto

type PostCreateRequest struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Status          string   `json:"status"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
}

type PostUpdateRequest struct {
	Title           *string   `json:"title"`
	Slug            *string   `json:"slug"`
	Content         *string   `json:"content"`
	Excerpt         *string   `json:"excerpt"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	Status          *string   `json:"status"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
}

type TestimonialCreateRequest struct {
	StudentName     string `json:"student_name"`
	StudentPhotoURL string `json:"student_photo_url"`
	ScoreBefore     string `json:"score_before"`
	ScoreAfter      string `json:"score_after"`
	ScoreBreakdown  string `json:"score_breakdown"`
	Text            string `json:"text"`
	VideoURL        string `json:"video_url"`
	Location        string `json:"location"`
	ExamDate        string `json:"exam_date"`
	IsFeatured      bool   `json:"is_featured"`
	DisplayOrder    int    `json:"display_order"`
}

type ReviewCreateRequest struct {
	ReviewerName     string `json:"reviewer_name"`
	ReviewerPhotoURL string `json:"reviewer_photo_url"`
	Text             string `json:"text"`
	Rating           int    `json:"rating"`
	GoogleReviewURL  string `json:"google_review_url"`
	ReviewDate       string `json:"review_date"`
	IsFeatured       bool   `json:"is_featured"`
}

type ScoreSheetCreateRequest struct {
	StudentName    string  `json:"student_name"`
	ExamType       string  `json:"exam_type"`
	OverallScore   float64 `json:"overall_score"`
	ListeningScore float64 `json:"listening_score"`
	ReadingScore   float64 `json:"reading_score"`
	SpeakingScore  float64 `json:"speaking_score"`
	WritingScore   float64 `json:"writing_score"`
	ImageURL       string  `json:"image_url"`
	ExamDate       string  `json:"exam_date"`
	Location       string  `json:"location"`
	IsFeatured     bool    `json:"is_featured"`
}

type TestimonialUpdateRequest struct {
	StudentName     *string `json:"student_name"`
	StudentPhotoURL *string `json:"student_photo_url"`
	ScoreBefore     *string `json:"score_before"`
	ScoreAfter      *string `json:"score_after"`
	ScoreBreakdown  *string `json:"score_breakdown"`
	Text            *string `json:"text"`
	VideoURL        *string `json:"video_url"`
	Location        *string `json:"location"`
	ExamDate        *string `json:"exam_date"`
	IsFeatured      *bool   `json:"is_featured"`
	Status          *string `json:"status"`
	DisplayOrder    *int    `json:"display_order"`
}

type ReviewUpdateRequest struct {
	ReviewerName     *string `json:"reviewer_name"`
	ReviewerPhotoURL *string `json:"reviewer_photo_url"`
	Text             *string `json:"text"`
	Rating           *int    `json:"rating"`
	GoogleReviewURL  *string `json:"google_review_url"`
	ReviewDate       *string `json:"review_date"`
	IsFeatured       *bool   `json:"is_featured"`
}

type ScoreSheetUpdateRequest struct {
	StudentName    *string  `json:"student_name"`
	ExamType       *string  `json:"exam_type"`
	OverallScore   *float64 `json:"overall_score"`
	ListeningScore *float64 `json:"listening_score"`
	ReadingScore   *float64 `json:"reading_score"`
	SpeakingScore  *float64 `json:"speaking_score"`
	WritingScore   *float64 `json:"writing_score"`
	ImageURL       *string  `json:"image_url"`
	ExamDate       *string  `json:"exam_date"`
	Location       *string  `json:"location"`
	IsFeatured     *bool    `json:"is_featured"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}
