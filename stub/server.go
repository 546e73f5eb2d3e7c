// Package stub is an in-memory stand-in for the HarvestHub backend, serving
// the login and product upload endpoints for dry runs and tests.
package stub

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/harvesthub-seeder/api"
	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
	"golang.org/x/crypto/bcrypt"
)

// maxUploadMemory matches the 10MB form limit used for multipart parsing
const maxUploadMemory = 10 << 20

// Server holds users and created products
type Server struct {
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	users    map[string]models.User // by username
	products []models.Product
	uploads  map[models.ProductID][]UploadedImage
}

// UploadResponse is the success body of the upload endpoint, carrying the
// full stored product
type UploadResponse struct {
	Message        string         `json:"message"`
	Product        models.Product `json:"product"`
	ImagesUploaded int            `json:"imagesUploaded"`
}

// UploadedImage records an image part received with a product
type UploadedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewServer creates a stub backend signing tokens with secret
func NewServer(secret []byte) *Server {
	if len(secret) == 0 {
		secret = []byte(uuid.NewString())
	}
	return &Server{
		secret:   secret,
		tokenTTL: 24 * time.Hour,
		users:    make(map[string]models.User),
		uploads:  make(map[models.ProductID][]UploadedImage),
	}
}

// AddUser registers a seller account with a bcrypt-hashed password
func (s *Server) AddUser(username, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@harvesthub.local",
		Password: string(hashed),
		Role:     "SELLER",
	}
	return nil
}

// Handler returns the HTTP routes of the stub backend
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(api.LoginPath, s.LoginHandler)
	mux.HandleFunc(api.UploadPath, s.UploadProductHandler)
	return utils.LatencyMiddleware(mux)
}

// Products returns a copy of every product created so far
func (s *Server) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Uploads returns the image parts received for a product
func (s *Server) Uploads(id models.ProductID) []UploadedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]UploadedImage(nil), s.uploads[id]...)
}

func (s *Server) lookupUser(username string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	return u, ok
}

func (s *Server) save(p models.Product, images []UploadedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	if len(images) > 0 {
		s.uploads[p.ID] = images
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
