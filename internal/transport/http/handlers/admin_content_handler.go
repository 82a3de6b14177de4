package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	postssvc "github.com/coachpoint/backend/internal/services/posts"
	showcasesvc "github.com/coachpoint/backend/internal/services/showcase"
	"github.com/coachpoint/backend/internal/transport/http/dto"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

// AdminContentHandler manages everything the marketing site displays: blog
// posts, testimonials, reviews and score sheets.
type AdminContentHandler struct {
	posts    *postssvc.Service
	showcase *showcasesvc.Service
}

func NewAdminContentHandler(posts *postssvc.Service, showcase *showcasesvc.Service) *AdminContentHandler {
	return &AdminContentHandler{posts: posts, showcase: showcase}
}

func (h *AdminContentHandler) Posts(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeInternal(w)
		return
	}

	page, err := h.posts.AdminPage(r.Context(), queryInt(r, "page", "1"), queryInt(r, "per_page", "20"))
	if err != nil {
		writeInternal(w)
		return
	}

	respond.OK(w, postPageResponse(page))
}

func (h *AdminContentHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeInternal(w)
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	var req dto.PostCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	status := enums.PostDraft
	if req.Status != "" {
		parsed, ok := enums.ParsePostStatus(req.Status)
		if !ok {
			writeBadRequest(w, "Unknown post status")
			return
		}
		status = parsed
	}

	post, err := h.posts.Create(r.Context(), model.Post{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Category:        req.Category,
		Tags:            req.Tags,
		AuthorID:        identity.UserID,
		Status:          status,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	})
	if err != nil {
		handlePostError(w, err)
		return
	}

	respond.Created(w, postResponse(post))
}

func (h *AdminContentHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid post id")
		return
	}

	var req dto.PostUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	update := model.PostUpdate{
		Title:           req.Title,
		Slug:            req.Slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Category:        req.Category,
		Tags:            req.Tags,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
	if req.Status != nil {
		parsed, ok := enums.ParsePostStatus(*req.Status)
		if !ok {
			writeBadRequest(w, "Unknown post status")
			return
		}
		update.Status = &parsed
	}

	post, err := h.posts.Update(r.Context(), id, update)
	if err != nil {
		handlePostError(w, err)
		return
	}

	respond.OK(w, postResponse(post))
}

func (h *AdminContentHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid post id")
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		handlePostError(w, err)
		return
	}

	respond.OK(w, dto.CreatedResponse{ID: id})
}

func (h *AdminContentHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	var req dto.TestimonialCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	id, err := h.showcase.AddTestimonial(r.Context(), model.Testimonial{
		StudentName:     req.StudentName,
		StudentPhotoURL: req.StudentPhotoURL,
		ScoreBefore:     req.ScoreBefore,
		ScoreAfter:      req.ScoreAfter,
		ScoreBreakdown:  req.ScoreBreakdown,
		Text:            req.Text,
		VideoURL:        req.VideoURL,
		Location:        req.Location,
		ExamDate:        parseDate(req.ExamDate),
		IsFeatured:      req.IsFeatured,
		DisplayOrder:    req.DisplayOrder,
	})
	if err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.Created(w, dto.CreatedResponse{ID: id})
}

// Testimonials lists every testimonial regardless of status so pending
// submissions are visible for moderation.
func (h *AdminContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	items, err := h.showcase.AllTestimonials(r.Context(), queryInt(r, "limit", "0"))
	if err != nil {
		writeInternal(w)
		return
	}

	out := make([]dto.TestimonialResponse, 0, len(items))
	for _, t := range items {
		out = append(out, testimonialResponse(t))
	}
	respond.OK(w, out)
}

func (h *AdminContentHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	var req dto.TestimonialUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	update := model.TestimonialUpdate{
		StudentName:     req.StudentName,
		StudentPhotoURL: req.StudentPhotoURL,
		ScoreBefore:     req.ScoreBefore,
		ScoreAfter:      req.ScoreAfter,
		ScoreBreakdown:  req.ScoreBreakdown,
		Text:            req.Text,
		VideoURL:        req.VideoURL,
		Location:        req.Location,
		IsFeatured:      req.IsFeatured,
		Status:          req.Status,
		DisplayOrder:    req.DisplayOrder,
	}
	if req.ExamDate != nil {
		update.ExamDate = parseDate(*req.ExamDate)
	}

	if err := h.showcase.UpdateTestimonial(r.Context(), id, update); err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.OK(w, dto.CreatedResponse{ID: id})
}

func (h *AdminContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	h.deleteShowcaseItem(w, r, h.showcase.RemoveTestimonial)
}

func (h *AdminContentHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	var req dto.ReviewCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	id, err := h.showcase.AddReview(r.Context(), model.Review{
		ReviewerName:     req.ReviewerName,
		ReviewerPhotoURL: req.ReviewerPhotoURL,
		Text:             req.Text,
		Rating:           req.Rating,
		GoogleReviewURL:  req.GoogleReviewURL,
		ReviewDate:       parseDate(req.ReviewDate),
		IsFeatured:       req.IsFeatured,
	})
	if err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.Created(w, dto.CreatedResponse{ID: id})
}

func (h *AdminContentHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	items, err := h.showcase.AllReviews(r.Context(), queryInt(r, "limit", "0"))
	if err != nil {
		writeInternal(w)
		return
	}

	out := make([]dto.ReviewResponse, 0, len(items))
	for _, rv := range items {
		out = append(out, reviewResponse(rv))
	}
	respond.OK(w, out)
}

func (h *AdminContentHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	var req dto.ReviewUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	update := model.ReviewUpdate{
		ReviewerName:     req.ReviewerName,
		ReviewerPhotoURL: req.ReviewerPhotoURL,
		Text:             req.Text,
		Rating:           req.Rating,
		GoogleReviewURL:  req.GoogleReviewURL,
		IsFeatured:       req.IsFeatured,
	}
	if req.ReviewDate != nil {
		update.ReviewDate = parseDate(*req.ReviewDate)
	}

	if err := h.showcase.UpdateReview(r.Context(), id, update); err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.OK(w, dto.CreatedResponse{ID: id})
}

func (h *AdminContentHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	h.deleteShowcaseItem(w, r, h.showcase.RemoveReview)
}

func (h *AdminContentHandler) CreateScoreSheet(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	var req dto.ScoreSheetCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	id, err := h.showcase.AddScoreSheet(r.Context(), model.ScoreSheet{
		StudentName:    req.StudentName,
		ExamType:       req.ExamType,
		OverallScore:   req.OverallScore,
		ListeningScore: req.ListeningScore,
		ReadingScore:   req.ReadingScore,
		SpeakingScore:  req.SpeakingScore,
		WritingScore:   req.WritingScore,
		ImageURL:       req.ImageURL,
		ExamDate:       parseDate(req.ExamDate),
		Location:       req.Location,
		IsFeatured:     req.IsFeatured,
	})
	if err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.Created(w, dto.CreatedResponse{ID: id})
}

func (h *AdminContentHandler) ScoreSheets(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	items, err := h.showcase.AllScoreSheets(r.Context(), queryInt(r, "limit", "0"))
	if err != nil {
		writeInternal(w)
		return
	}

	out := make([]dto.ScoreSheetResponse, 0, len(items))
	for _, s := range items {
		out = append(out, scoreSheetResponse(s))
	}
	respond.OK(w, out)
}

func (h *AdminContentHandler) UpdateScoreSheet(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	var req dto.ScoreSheetUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	update := model.ScoreSheetUpdate{
		StudentName:    req.StudentName,
		ExamType:       req.ExamType,
		OverallScore:   req.OverallScore,
		ListeningScore: req.ListeningScore,
		ReadingScore:   req.ReadingScore,
		SpeakingScore:  req.SpeakingScore,
		WritingScore:   req.WritingScore,
		ImageURL:       req.ImageURL,
		Location:       req.Location,
		IsFeatured:     req.IsFeatured,
	}
	if req.ExamDate != nil {
		update.ExamDate = parseDate(*req.ExamDate)
	}

	if err := h.showcase.UpdateScoreSheet(r.Context(), id, update); err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.OK(w, dto.CreatedResponse{ID: id})
}

func (h *AdminContentHandler) DeleteScoreSheet(w http.ResponseWriter, r *http.Request) {
	h.deleteShowcaseItem(w, r, h.showcase.RemoveScoreSheet)
}

func (h *AdminContentHandler) deleteShowcaseItem(w http.ResponseWriter, r *http.Request, remove func(ctx context.Context, id int64) error) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := remove(r.Context(), id); err != nil {
		handleShowcaseError(w, err)
		return
	}

	respond.OK(w, dto.CreatedResponse{ID: id})
}

func handlePostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, postssvc.ErrInvalidInput):
		writeBadRequest(w, "Invalid post")
	case errors.Is(err, postssvc.ErrSlugTaken):
		respond.Error(w, http.StatusConflict, "Slug already in use")
	case errors.Is(err, postssvc.ErrPostNotFound):
		writeNotFound(w, "Post not found")
	default:
		writeInternal(w)
	}
}

func handleShowcaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, showcasesvc.ErrInvalidInput):
		writeBadRequest(w, "Invalid input")
	case errors.Is(err, showcasesvc.ErrNotFound):
		writeNotFound(w, "Not found")
	default:
		writeInternal(w)
	}
}
