package server

import (
	"time"

	"inkwell/internal/markdown"
	"inkwell/internal/models"
)

// Response shapes for the public API. List and detail views differ:
// the list view carries taxonomy names and the excerpt only, while the
// detail view renders the markdown and includes every reaction.

// CategoryResponse is the API shape of a category.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagResponse is the API shape of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UserResponse is the compact account shape embedded in reactions.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ProfileResponse is the authenticated account's own view.
type ProfileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionResponse is the API shape of a reaction.
type ReactionResponse struct {
	ID           uint         `json:"id"`
	User         UserResponse `json:"user"`
	ReactionType string       `json:"reaction_type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// PostImageResponse is the API shape of an uploaded attachment.
type PostImageResponse struct {
	ID      uint   `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Order   int    `json:"order"`
}

// PostListResponse is the compact shape used in collection pages.
type PostListResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Author        string    `json:"author"`
	FeaturedImage string    `json:"featured_image"`
	Categories    []string  `json:"categories"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Published     bool      `json:"published"`
	LikesCount    int       `json:"likes_count"`
	DislikesCount int       `json:"dislikes_count"`
}

// PostDetailResponse is the full post shape. RenderedContent is
// recomputed from the markdown source on every request; it is never
// stored or cached.
type PostDetailResponse struct {
	ID              uint                `json:"id"`
	Title           string              `json:"title"`
	Slug            string              `json:"slug"`
	Content         string              `json:"content"`
	RenderedContent string              `json:"rendered_content"`
	Excerpt         string              `json:"excerpt"`
	Author          string              `json:"author"`
	FeaturedImage   string              `json:"featured_image"`
	Categories      []CategoryResponse  `json:"categories"`
	Tags            []TagResponse       `json:"tags"`
	Images          []PostImageResponse `json:"images"`
	Reactions       []ReactionResponse  `json:"reactions"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Published       bool                `json:"published"`
	LikesCount      int                 `json:"likes_count"`
	DislikesCount   int                 `json:"dislikes_count"`
	UserReaction    *string             `json:"user_reaction"`
}

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toTagResponse(t models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

func toProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

func toReactionResponse(r *models.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:           r.ID,
		User:         toUserResponse(r.User),
		ReactionType: r.ReactionType,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *Server) toPostImageResponse(img *models.PostImage) PostImageResponse {
	return PostImageResponse{
		ID:      img.ID,
		Image:   s.media.URL(img.Image),
		Caption: img.Caption,
		Order:   img.Order,
	}
}

func (s *Server) toPostListResponse(post *models.Post) PostListResponse {
	categories := make([]string, 0, len(post.Categories))
	for _, c := range post.Categories {
		categories = append(categories, c.Name)
	}
	tags := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tags = append(tags, t.Name)
	}

	return PostListResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		Author:        post.Author.Username,
		FeaturedImage: s.media.URL(post.FeaturedImage),
		Categories:    categories,
		Tags:          tags,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		Published:     post.Published,
		LikesCount:    post.LikesCount,
		DislikesCount: post.DislikesCount,
	}
}

// toPostDetailResponse builds the full view. viewerID selects the
// user_reaction field; zero means anonymous.
func (s *Server) toPostDetailResponse(post *models.Post, viewerID uint) PostDetailResponse {
	categories := make([]CategoryResponse, 0, len(post.Categories))
	for _, c := range post.Categories {
		categories = append(categories, toCategoryResponse(c))
	}
	tags := make([]TagResponse, 0, len(post.Tags))
	for _, t := range post.Tags {
		tags = append(tags, toTagResponse(t))
	}
	images := make([]PostImageResponse, 0, len(post.Images))
	for i := range post.Images {
		images = append(images, s.toPostImageResponse(&post.Images[i]))
	}

	reactions := make([]ReactionResponse, 0, len(post.Reactions))
	var userReaction *string
	for i := range post.Reactions {
		r := &post.Reactions[i]
		reactions = append(reactions, toReactionResponse(r))
		if viewerID != 0 && r.UserID == viewerID {
			rt := r.ReactionType
			userReaction = &rt
		}
	}

	return PostDetailResponse{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Content:         post.Content,
		RenderedContent: markdown.Render(post.Content),
		Excerpt:         post.Excerpt,
		Author:          post.Author.Username,
		FeaturedImage:   s.media.URL(post.FeaturedImage),
		Categories:      categories,
		Tags:            tags,
		Images:          images,
		Reactions:       reactions,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
		Published:       post.Published,
		LikesCount:      post.LikesCount,
		DislikesCount:   post.DislikesCount,
		UserReaction:    userReaction,
	}
}
