package controllers

import (
	"log"
	"net/http"

	"socialnetwork/app/models"
	"socialnetwork/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// Save handles POST /posts. The body is the owner's complete post set; the
// owner comes from the email query parameter, else from the first post.
func (pc *PostController) Save(w http.ResponseWriter, r *http.Request) {
	var posts []*models.Post
	if err := decodeJSON(r, &posts); err != nil {
		pc.fail(w, "Failed to save posts", err)
		return
	}

	owner := r.URL.Query().Get("email")
	if owner == "" && len(posts) > 0 && posts[0] != nil {
		owner = posts[0].Email
	}
	log.Printf("Posts save request received: count=%d email=%q bodySize=%d", len(posts), owner, r.ContentLength)

	if err := pc.postService.ReplacePosts(r.Context(), owner, posts); err != nil {
		pc.fail(w, "Failed to save posts", err)
		return
	}

	log.Printf("Posts saved successfully: %d", len(posts))
	SendJSON(w, http.StatusOK, MessageResponse{Message: "Posts saved"})
}

// Index handles GET /posts/{email}
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	log.Printf("Posts load request for: %s", email)

	posts, err := pc.postService.ListPosts(r.Context(), email)
	if err != nil {
		pc.fail(w, "Failed to load posts", err)
		return
	}

	log.Printf("Posts found: %d", len(posts))
	SendJSON(w, http.StatusOK, posts)
}

func (pc *PostController) fail(w http.ResponseWriter, message string, err error) {
	log.Printf("%s: %v", message, err)
	sendFailure(w, message, err)
}
