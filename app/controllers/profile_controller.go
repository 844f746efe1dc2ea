package controllers

import (
	"log"
	"net/http"

	"socialnetwork/app/models"
	"socialnetwork/app/services"

	"github.com/gorilla/mux"
)

// ProfileController handles HTTP requests for profiles
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// Register handles POST /register
func (pc *ProfileController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			pc.fail(w, "Registration failed", err)
			return
		}
		body.Email = r.PostForm.Get("email")
	} else if err := decodeJSON(r, &body); err != nil {
		pc.fail(w, "Registration failed", err)
		return
	}
	log.Printf("Register request received: email=%q", body.Email)

	profile, err := pc.profileService.Register(r.Context(), body.Email)
	if err != nil {
		pc.fail(w, "Registration failed", err)
		return
	}

	log.Printf("Profile saved successfully: %s", profile.Email)
	SendJSON(w, http.StatusCreated, MessageResponse{Message: "User registered", Email: profile.Email})
}

// Save handles POST /profile
func (pc *ProfileController) Save(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			pc.fail(w, "Failed to save profile", err)
			return
		}
		profile = models.Profile{
			Email:       r.PostForm.Get("email"),
			Name:        r.PostForm.Get("name"),
			Picture:     r.PostForm.Get("picture"),
			Description: r.PostForm.Get("description"),
			Status:      r.PostForm.Get("status"),
			Gallery:     formValues(r, "gallery"),
		}
	} else if err := decodeJSON(r, &profile); err != nil {
		pc.fail(w, "Failed to save profile", err)
		return
	}
	log.Printf("Profile update request received: email=%q name=%q bodySize=%d",
		profile.Email, profile.Name, r.ContentLength)

	if err := pc.profileService.SaveProfile(r.Context(), &profile); err != nil {
		pc.fail(w, "Failed to save profile", err)
		return
	}

	log.Printf("Profile updated successfully: email=%q name=%q", profile.Email, profile.Name)
	SendJSON(w, http.StatusOK, MessageResponse{Message: "Profile saved"})
}

// Show handles GET /profile/{email}
func (pc *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	log.Printf("Profile load request for: %s", email)

	profile, err := pc.profileService.LoadProfile(r.Context(), email)
	if err != nil {
		pc.fail(w, "Failed to load profile", err)
		return
	}

	SendJSON(w, http.StatusOK, profile)
}

func (pc *ProfileController) fail(w http.ResponseWriter, message string, err error) {
	log.Printf("%s: %v", message, err)
	sendFailure(w, message, err)
}
