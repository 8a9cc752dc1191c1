package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"solace.app/backend/internal/core"
	"solace.app/backend/internal/store"
)

// maxEchoUploadBytes caps multipart echo uploads at 20 MiB.
const maxEchoUploadBytes = 20 << 20

type APIHandler struct {
	profiles        *core.ProfileService
	diary           *core.DiaryService
	echoes          *core.EchoService
	recommendations *core.RecommendService
}

func NewAPIHandler(profiles *core.ProfileService, diary *core.DiaryService, echoes *core.EchoService, recommendations *core.RecommendService) *APIHandler {
	return &APIHandler{
		profiles:        profiles,
		diary:           diary,
		echoes:          echoes,
		recommendations: recommendations,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service failures onto the HTTP error taxonomy:
// validation and unintelligible-input are the caller's problem, missing
// records are 404, everything else surfaces as a generic failure with the
// underlying message.
func writeServiceError(w http.ResponseWriter, err error, logContext string) {
	switch {
	case core.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrUnintelligibleAudio):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Error %s: %v", logContext, err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type SignupRequest struct {
	Email string `json:"email"`
	UID   string `json:"uid"`
}

func (h *APIHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.profiles.CreateProfile(r.Context(), req.UID, req.Email)
	if err != nil {
		writeServiceError(w, err, "creating profile")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "User profile created successfully!",
		"uid":      profile.UID,
		"username": profile.AnonymousUsername,
	})
}

func (h *APIHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	profile, err := h.profiles.GetProfile(r.Context(), uid)
	if err != nil {
		writeServiceError(w, err, "getting profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.diary.ListPosts(r.Context())
	if err != nil {
		writeServiceError(w, err, "listing posts")
		return
	}
	if posts == nil {
		posts = []store.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

type CreatePostRequest struct {
	UID     string `json:"uid"`
	Content string `json:"content"`
	// Username is accepted for client compatibility but ignored; the
	// stored profile is authoritative for the anonymous username.
	Username string `json:"username,omitempty"`
}

func (h *APIHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.diary.CreatePost(r.Context(), req.UID, req.Content); err != nil {
		writeServiceError(w, err, "creating post")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Post created and analyzed successfully!"})
}

func (h *APIHandler) CreateEchoHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEchoUploadBytes)
	if err := r.ParseMultipartForm(maxEchoUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	uid := r.FormValue("uid")

	echo, err := h.echoes.CreateEcho(r.Context(), uid, header.Filename, file)
	if err != nil {
		writeServiceError(w, err, "creating echo")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Echo created successfully!",
		"url":     echo.AudioURL,
	})
}

func (h *APIHandler) ListEchoesHandler(w http.ResponseWriter, r *http.Request) {
	echoes, err := h.echoes.ListEchoes(r.Context())
	if err != nil {
		writeServiceError(w, err, "listing echoes")
		return
	}
	if echoes == nil {
		echoes = []store.Echo{}
	}
	writeJSON(w, http.StatusOK, echoes)
}

func (h *APIHandler) AddGlimmerHandler(w http.ResponseWriter, r *http.Request) {
	echoID := chi.URLParam(r, "echoID")

	if err := h.echoes.AddGlimmer(r.Context(), echoID); err != nil {
		writeServiceError(w, err, "adding glimmer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Glimmer added!"})
}

type RecommendationResponse struct {
	Recommendation any `json:"recommendation"`
}

func (h *APIHandler) RecommendationHandler(w http.ResponseWriter, r *http.Request) {
	content := r.URL.Query().Get("content")

	post, found, err := h.recommendations.Recommend(r.Context(), content)
	if err != nil {
		writeServiceError(w, err, "getting recommendation")
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, RecommendationResponse{Recommendation: "No suitable positive posts found right now."})
		return
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{Recommendation: post})
}
