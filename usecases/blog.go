package usecases

import (
	"fmt"
	"strings"

	"sage-portal/entities"
	"sage-portal/repositories"

	"github.com/gosimple/slug"
)

type BlogPostRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
}

type BlogPostUpdate struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"cover_image"`
	Published  *bool   `json:"published"`
}

type BlogUseCase struct {
	posts repositories.BlogRepository
}

func NewBlogUseCase(posts repositories.BlogRepository) *BlogUseCase {
	return &BlogUseCase{posts: posts}
}

func (uc *BlogUseCase) PublishedPosts() ([]entities.BlogPost, error) {
	return uc.posts.GetPublished()
}

func (uc *BlogUseCase) AllPosts() ([]entities.BlogPost, error) {
	return uc.posts.GetAll()
}

// GetBySlug finds a post; drafts are only visible when includeDrafts is set.
func (uc *BlogUseCase) GetBySlug(s string, includeDrafts bool) (*entities.BlogPost, error) {
	post, err := uc.posts.GetBySlug(s)
	if err != nil {
		return nil, notFound("blog post", err)
	}
	if !post.Published && !includeDrafts {
		return nil, fmt.Errorf("%w: blog post", ErrNotFound)
	}
	return post, nil
}

func (uc *BlogUseCase) GetPost(id string) (*entities.BlogPost, error) {
	post, err := uc.posts.GetByID(id)
	if err != nil {
		return nil, notFound("blog post", err)
	}
	return post, nil
}

func (uc *BlogUseCase) CreatePost(author *entities.Profile, req BlogPostRequest) (*entities.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, required("title")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, required("content")
	}

	s, err := uc.uniqueSlug(req.Slug, title, "")
	if err != nil {
		return nil, err
	}

	post := &entities.BlogPost{
		Title:      title,
		Slug:       s,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	if author != nil {
		post.AuthorID = author.ID
		post.AuthorName = author.FullName
	}
	if err := uc.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *BlogUseCase) UpdatePost(id string, upd BlogPostUpdate) (*entities.BlogPost, error) {
	existing, err := uc.GetPost(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, required("title")
		}
		existing.Title = title
	}
	if upd.Slug != nil {
		s, err := uc.uniqueSlug(*upd.Slug, existing.Title, existing.ID)
		if err != nil {
			return nil, err
		}
		existing.Slug = s
	}
	if upd.Content != nil {
		existing.Content = *upd.Content
	}
	if upd.Excerpt != nil {
		existing.Excerpt = *upd.Excerpt
	}
	if upd.CoverImage != nil {
		existing.CoverImage = *upd.CoverImage
	}
	if upd.Published != nil {
		existing.Published = *upd.Published
	}

	if err := uc.posts.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// TogglePublish flips a post between draft and published.
func (uc *BlogUseCase) TogglePublish(id string) (*entities.BlogPost, error) {
	existing, err := uc.GetPost(id)
	if err != nil {
		return nil, err
	}
	existing.Published = !existing.Published
	if err := uc.posts.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *BlogUseCase) DeletePost(id string) error {
	if _, err := uc.GetPost(id); err != nil {
		return err
	}
	return uc.posts.Delete(id)
}

// uniqueSlug slugifies the requested slug, or the title when none is given,
// and appends -2, -3, ... until it is free.
func (uc *BlogUseCase) uniqueSlug(requested, title, excludeID string) (string, error) {
	base := slug.Make(strings.TrimSpace(requested))
	if base == "" {
		base = slug.Make(title)
	}
	if base == "" {
		return "", required("slug")
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := uc.posts.SlugExists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
