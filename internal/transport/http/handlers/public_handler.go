package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coachpoint/backend/internal/domain/model"
	contactsvc "github.com/coachpoint/backend/internal/services/contact"
	postssvc "github.com/coachpoint/backend/internal/services/posts"
	showcasesvc "github.com/coachpoint/backend/internal/services/showcase"
	"github.com/coachpoint/backend/internal/transport/http/dto"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

// PublicHandler serves the marketing site: blog posts, testimonials, reviews,
// score sheets and the contact form. No auth in front of any of it.
type PublicHandler struct {
	posts    *postssvc.Service
	showcase *showcasesvc.Service
	contact  *contactsvc.Service
}

func NewPublicHandler(posts *postssvc.Service, showcase *showcasesvc.Service, contact *contactsvc.Service) *PublicHandler {
	return &PublicHandler{posts: posts, showcase: showcase, contact: contact}
}

func (h *PublicHandler) Posts(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeInternal(w)
		return
	}

	page, err := h.posts.PublishedPage(r.Context(), queryInt(r, "page", "1"))
	if err != nil {
		writeInternal(w)
		return
	}

	respond.OK(w, postPageResponse(page))
}

func (h *PublicHandler) PostBySlug(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeInternal(w)
		return
	}

	post, err := h.posts.PublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, postssvc.ErrPostNotFound) {
			writeNotFound(w, "Post not found")
			return
		}
		writeInternal(w)
		return
	}

	respond.OK(w, postResponse(post))
}

func (h *PublicHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	items, err := h.showcase.Testimonials(r.Context(), queryInt(r, "limit", "0"))
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

func (h *PublicHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	items, err := h.showcase.Reviews(r.Context(),
		queryInt(r, "min_rating", "1"),
		queryInt(r, "limit", "0"),
	)
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

func (h *PublicHandler) ScoreSheets(w http.ResponseWriter, r *http.Request) {
	if h.showcase == nil {
		writeInternal(w)
		return
	}

	featured := r.URL.Query().Get("featured") == "true"
	items, err := h.showcase.ScoreSheets(r.Context(),
		r.URL.Query().Get("exam_type"),
		featured,
		queryInt(r, "limit", "0"),
	)
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

func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if h.contact == nil {
		writeInternal(w)
		return
	}

	var req dto.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	id, err := h.contact.Submit(r.Context(), model.ContactSubmission{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		SourcePage: req.SourcePage,
	})
	if err != nil {
		if errors.Is(err, contactsvc.ErrInvalidInput) {
			respond.ValidationFailed(w, map[string]string{"form": "Name, email and message are required"})
			return
		}
		writeInternal(w)
		return
	}

	respond.Created(w, dto.ContactResponse{ID: id, Message: "Thank you, we will get back to you soon"})
}

func postSummaryResponse(post model.Post) dto.PostSummaryResponse {
	return dto.PostSummaryResponse{
		ID:         post.ID,
		Title:      post.Title,
		Slug:       post.Slug,
		Excerpt:    post.Excerpt,
		Category:   post.Category,
		Tags:       post.Tags,
		AuthorName: post.AuthorName,
		Status:     post.Status.String(),
		CreatedAt:  formatTime(post.CreatedAt),
	}
}

func postResponse(post model.Post) dto.PostResponse {
	return dto.PostResponse{
		PostSummaryResponse: postSummaryResponse(post),
		Content:             post.Content,
		MetaTitle:           post.MetaTitle,
		MetaDescription:     post.MetaDescription,
		UpdatedAt:           formatTime(post.UpdatedAt),
	}
}

func postPageResponse(page postssvc.Page) dto.PostPageResponse {
	posts := make([]dto.PostSummaryResponse, 0, len(page.Posts))
	for _, post := range page.Posts {
		posts = append(posts, postSummaryResponse(post))
	}
	return dto.PostPageResponse{
		Posts:      posts,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
}

func testimonialResponse(t model.Testimonial) dto.TestimonialResponse {
	return dto.TestimonialResponse{
		ID:              t.ID,
		StudentName:     t.StudentName,
		StudentPhotoURL: t.StudentPhotoURL,
		ScoreBefore:     t.ScoreBefore,
		ScoreAfter:      t.ScoreAfter,
		ScoreBreakdown:  t.ScoreBreakdown,
		Text:            t.Text,
		VideoURL:        t.VideoURL,
		Location:        t.Location,
		ExamDate:        formatTimePtr(t.ExamDate),
		IsFeatured:      t.IsFeatured,
		Status:          t.Status,
		DisplayOrder:    t.DisplayOrder,
	}
}

func reviewResponse(rv model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:               rv.ID,
		ReviewerName:     rv.ReviewerName,
		ReviewerPhotoURL: rv.ReviewerPhotoURL,
		Text:             rv.Text,
		Rating:           rv.Rating,
		GoogleReviewURL:  rv.GoogleReviewURL,
		ReviewDate:       formatTimePtr(rv.ReviewDate),
		IsFeatured:       rv.IsFeatured,
	}
}

func scoreSheetResponse(s model.ScoreSheet) dto.ScoreSheetResponse {
	return dto.ScoreSheetResponse{
		ID:             s.ID,
		StudentName:    s.StudentName,
		ExamType:       s.ExamType,
		OverallScore:   s.OverallScore,
		ListeningScore: s.ListeningScore,
		ReadingScore:   s.ReadingScore,
		SpeakingScore:  s.SpeakingScore,
		WritingScore:   s.WritingScore,
		ImageURL:       s.ImageURL,
		ExamDate:       formatTimePtr(s.ExamDate),
		Location:       s.Location,
		IsFeatured:     s.IsFeatured,
	}
}
