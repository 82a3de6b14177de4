package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
	postssvc "github.com/coachpoint/backend/internal/services/posts"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return raw, nil
}

func decodeTags(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = nil
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	return nil
}

func (r *PostRepo) Create(ctx context.Context, post model.Post) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Slug) == "" {
		return 0, postssvc.ErrInvalidInput
	}

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.pool.QueryRow(ctx, `
INSERT INTO posts
	(title, slug, content, excerpt, category, tags, author_id, status,
	 meta_title, meta_description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
RETURNING id
`, post.Title, post.Slug, post.Content, post.Excerpt, post.Category, tags,
		post.AuthorID, post.Status, post.MetaTitle, post.MetaDescription).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, postssvc.ErrSlugTaken
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}

	return id, nil
}

func (r *PostRepo) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Post, error) {
	if r.pool == nil {
		return model.Post{}, fmt.Errorf("postgres pool is nil")
	}
	if slug == "" {
		return model.Post{}, postssvc.ErrInvalidInput
	}

	query := `
SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.category, p.tags,
	p.author_id, COALESCE(u.full_name, ''), p.status, p.meta_title, p.meta_description,
	p.created_at, p.updated_at
FROM posts p
LEFT JOIN users u ON u.id = p.author_id
WHERE p.slug = $1
`
	if publishedOnly {
		query += " AND p.status = 'published'"
	}

	var (
		post model.Post
		tags []byte
	)
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt, &post.Category, &tags,
		&post.AuthorID, &post.AuthorName, &post.Status, &post.MetaTitle, &post.MetaDescription,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, postssvc.ErrPostNotFound
		}
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}
	if err := decodeTags(tags, &post.Tags); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (r *PostRepo) FindByID(ctx context.Context, id int64) (model.Post, error) {
	if r.pool == nil {
		return model.Post{}, fmt.Errorf("postgres pool is nil")
	}

	var (
		post model.Post
		tags []byte
	)
	err := r.pool.QueryRow(ctx, `
SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.category, p.tags,
	p.author_id, COALESCE(u.full_name, ''), p.status, p.meta_title, p.meta_description,
	p.created_at, p.updated_at
FROM posts p
LEFT JOIN users u ON u.id = p.author_id
WHERE p.id = $1
`, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt, &post.Category, &tags,
		&post.AuthorID, &post.AuthorName, &post.Status, &post.MetaTitle, &post.MetaDescription,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, postssvc.ErrPostNotFound
		}
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}
	if err := decodeTags(tags, &post.Tags); err != nil {
		return model.Post{}, err
	}

	return post, nil
}

// ListPublished pages through published posts, newest first. Content is left
// out of the listing, the excerpt is what the site renders.
func (r *PostRepo) ListPublished(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return r.list(ctx, true, limit, offset)
}

func (r *PostRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return r.list(ctx, false, limit, offset)
}

func (r *PostRepo) list(ctx context.Context, publishedOnly bool, limit, offset int) ([]model.Post, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT p.id, p.title, p.slug, p.excerpt, p.category, p.tags,
	p.author_id, COALESCE(u.full_name, ''), p.status, p.created_at, p.updated_at
FROM posts p
LEFT JOIN users u ON u.id = p.author_id
`
	if publishedOnly {
		query += " WHERE p.status = 'published'"
	}
	query += " ORDER BY p.created_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var (
			post model.Post
			tags []byte
		)
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Category, &tags,
			&post.AuthorID, &post.AuthorName, &post.Status, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		if err := decodeTags(tags, &post.Tags); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}

	return posts, nil
}

func (r *PostRepo) Count(ctx context.Context, status *enums.PostStatus) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var (
		total int64
		err   error
	)
	if status != nil {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE status = $1`, *status).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return total, nil
}

func (r *PostRepo) Update(ctx context.Context, id int64, update model.PostUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return postssvc.ErrInvalidInput
	}

	var tags []byte
	if update.Tags != nil {
		raw, err := encodeTags(*update.Tags)
		if err != nil {
			return err
		}
		tags = raw
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE posts SET
	title = COALESCE($2, title),
	slug = COALESCE($3, slug),
	content = COALESCE($4, content),
	excerpt = COALESCE($5, excerpt),
	category = COALESCE($6, category),
	tags = COALESCE($7, tags),
	status = COALESCE($8, status),
	meta_title = COALESCE($9, meta_title),
	meta_description = COALESCE($10, meta_description),
	updated_at = NOW()
WHERE id = $1
`, id, update.Title, update.Slug, update.Content, update.Excerpt, update.Category,
		tags, update.Status, update.MetaTitle, update.MetaDescription)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return postssvc.ErrSlugTaken
		}
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return postssvc.ErrPostNotFound
	}

	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return postssvc.ErrPostNotFound
	}

	return nil
}
