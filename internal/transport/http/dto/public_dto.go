package dto

type PostSummaryResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	AuthorName string   `json:"author_name"`
	Status     string   `json:"status,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

type PostResponse struct {
	PostSummaryResponse
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	UpdatedAt       string `json:"updated_at"`
}

type PostPageResponse struct {
	Posts      []PostSummaryResponse `json:"posts"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int64                 `json:"total_pages"`
}

type TestimonialResponse struct {
	ID              int64  `json:"id"`
	StudentName     string `json:"student_name"`
	StudentPhotoURL string `json:"student_photo_url"`
	ScoreBefore     string `json:"score_before"`
	ScoreAfter      string `json:"score_after"`
	ScoreBreakdown  string `json:"score_breakdown"`
	Text            string `json:"text"`
	VideoURL        string `json:"video_url"`
	Location        string `json:"location"`
	ExamDate        string `json:"exam_date,omitempty"`
	IsFeatured      bool   `json:"is_featured"`
	Status          string `json:"status"`
	DisplayOrder    int    `json:"display_order"`
}

type ReviewResponse struct {
	ID               int64  `json:"id"`
	ReviewerName     string `json:"reviewer_name"`
	ReviewerPhotoURL string `json:"reviewer_photo_url"`
	Text             string `json:"text"`
	Rating           int    `json:"rating"`
	GoogleReviewURL  string `json:"google_review_url"`
	ReviewDate       string `json:"review_date,omitempty"`
	IsFeatured       bool   `json:"is_featured"`
}

type ScoreSheetResponse struct {
	ID             int64   `json:"id"`
	StudentName    string  `json:"student_name"`
	ExamType       string  `json:"exam_type"`
	OverallScore   float64 `json:"overall_score"`
	ListeningScore float64 `json:"listening_score"`
	ReadingScore   float64 `json:"reading_score"`
	SpeakingScore  float64 `json:"speaking_score"`
	WritingScore   float64 `json:"writing_score"`
	ImageURL       string  `json:"image_url"`
	ExamDate       string  `json:"exam_date,omitempty"`
	Location       string  `json:"location"`
	IsFeatured     bool    `json:"is_featured"`
}

type ContactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	SourcePage string `json:"source_page"`
}

type ContactResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
