package routes

import (
	"fmt"
	"net/http"

	"socialnetwork/app/config"
	"socialnetwork/app/controllers"
	"socialnetwork/app/middleware"
	"socialnetwork/app/repositories"
	"socialnetwork/app/services"

	"github.com/gorilla/mux"
)

// HealthMessage is served on GET /
const HealthMessage = "Social Network Backend is running"

// SetupRoutes binds every endpoint to store and wraps the router in the
// request middleware chain.
func SetupRoutes(store repositories.Store, cfg config.Config) http.Handler {
	router := mux.NewRouter()

	profileController := controllers.NewProfileController(services.NewProfileService(store.Profiles()))
	postController := controllers.NewPostController(services.NewPostService(store.Posts()))

	router.HandleFunc("/", health).Methods("GET")

	router.HandleFunc("/register", profileController.Register).Methods("POST")
	router.HandleFunc("/profile", profileController.Save).Methods("POST")
	router.HandleFunc("/profile/{email}", profileController.Show).Methods("GET")

	router.HandleFunc("/posts", postController.Save).Methods("POST")
	router.HandleFunc("/posts/{email}", postController.Index).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.SendError(w, http.StatusNotFound, "Not found", fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controllers.SendError(w, http.StatusMethodNotAllowed, "Method not allowed", fmt.Sprintf("%s is not supported on %s", r.Method, r.URL.Path))
	})

	var handler http.Handler = router
	handler = middleware.BodyLimit(cfg.BodyLimit)(handler)
	handler = middleware.CORS(cfg.CORSOrigin)(handler)
	handler = middleware.Recoverer(handler)
	handler = middleware.Logger(handler)
	return handler
}

func health(w http.ResponseWriter, r *http.Request) {
	controllers.SendJSON(w, http.StatusOK, controllers.MessageResponse{Message: HealthMessage})
}
