package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/raushankrgupta/harvesthub-seeder/api"
	"github.com/raushankrgupta/harvesthub-seeder/config"
	"github.com/raushankrgupta/harvesthub-seeder/images"
	"github.com/raushankrgupta/harvesthub-seeder/models"
)

// Outcome is the overall result of a run
type Outcome int

const (
	Success Outcome = iota
	AuthenticationFailed
	SubmissionFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case AuthenticationFailed:
		return "authentication failed"
	case SubmissionFailed:
		return "submission failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ExitCode maps an outcome to the process exit status
func (o Outcome) ExitCode() int {
	switch o {
	case Success:
		return 0
	case AuthenticationFailed:
		return 2
	default:
		return 3
	}
}

// Result is what one run produced
type Result struct {
	Outcome   Outcome
	ProductID models.ProductID
	Message   string
	Err       error
}

// Backend is the part of api.Client a run needs
type Backend interface {
	Login(ctx context.Context, username, password string) (string, error)
	CreateProduct(ctx context.Context, token, sellerID string, draft models.ProductDraft, image *models.ImageFile) (*models.CreateProductResponse, error)
}

// Run logs in and submits cfg.Draft. The image provider may be nil. Progress
// is written to out. Submission is never attempted when login fails.
func Run(ctx context.Context, cfg *config.Config, backend Backend, provider images.Provider, out io.Writer) Result {
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintf(out, "Logging in as %s...\n", cfg.Username)
	token, err := backend.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		reportAuthFailure(out, err)
		return Result{Outcome: AuthenticationFailed, Err: err}
	}
	if token == "" {
		err := &api.AuthenticationFailure{StatusCode: 200, Err: errors.New("empty token")}
		reportAuthFailure(out, err)
		return Result{Outcome: AuthenticationFailed, Err: err}
	}
	fmt.Fprintln(out, "Login successful")

	image := findImage(ctx, provider, out)

	fmt.Fprintln(out, "\n=== Creating product ===")
	fmt.Fprintf(out, "URL: %s%s\n", cfg.BaseURL, api.UploadPath)
	fmt.Fprintf(out, "Product name: %s\n", cfg.Draft.Name)
	fmt.Fprintf(out, "Category: %s\n", cfg.Draft.Category)
	fmt.Fprintf(out, "Price: %s\n", cfg.Draft.Price.String())

	created, err := backend.CreateProduct(ctx, token, cfg.EffectiveSellerID(), cfg.Draft, image)
	if err != nil {
		reportSubmissionFailure(out, err)
		return Result{Outcome: SubmissionFailed, Err: err}
	}

	fmt.Fprintln(out, "Product created")
	fmt.Fprintf(out, "Product ID: %s\n", orNA(string(created.Product.ID)))
	fmt.Fprintf(out, "Message: %s\n", orNA(created.Message))
	return Result{Outcome: Success, ProductID: created.Product.ID, Message: created.Message}
}

// findImage never fails the run; lookup errors just mean no attachment.
func findImage(ctx context.Context, provider images.Provider, out io.Writer) *models.ImageFile {
	if provider == nil {
		fmt.Fprintln(out, "No image source configured, uploading without image")
		return nil
	}
	image, err := provider.FindImage(ctx)
	if err != nil {
		fmt.Fprintf(out, "Could not load image from %s: %v\n", provider.Describe(), err)
		return nil
	}
	if image == nil {
		fmt.Fprintf(out, "No image found in %s, uploading without image\n", provider.Describe())
		return nil
	}
	fmt.Fprintf(out, "Attached image: %s (%d bytes)\n", image.Name, len(image.Data))
	return image
}

func reportAuthFailure(out io.Writer, err error) {
	var authErr *api.AuthenticationFailure
	if errors.As(err, &authErr) && authErr.StatusCode != 0 {
		fmt.Fprintf(out, "Login failed: %d\n", authErr.StatusCode)
		if desc := authErr.Describe(); desc != "" {
			fmt.Fprintln(out, desc)
		}
	} else {
		fmt.Fprintf(out, "Login failed: %v\n", err)
	}
	fmt.Fprintln(out, "\nCould not log in. Check that:")
	fmt.Fprintln(out, "  1. The backend is running and reachable")
	fmt.Fprintln(out, "  2. The username and password are correct")
	fmt.Fprintln(out, "  3. The user is allowed to add products")
}

func reportSubmissionFailure(out io.Writer, err error) {
	var subErr *api.SubmissionFailure
	if errors.As(err, &subErr) && subErr.StatusCode != 0 {
		fmt.Fprintf(out, "\nStatus Code: %d\n", subErr.StatusCode)
		fmt.Fprintf(out, "Failed to create product: %d\n", subErr.StatusCode)
		if subErr.Detail != nil {
			fmt.Fprintf(out, "Error: %s\n", subErr.Describe())
		} else {
			fmt.Fprintf(out, "Response: %s\n", subErr.Body)
		}
		if subErr.Err != nil {
			fmt.Fprintf(out, "Cause: %v\n", subErr.Err)
		}
		return
	}
	fmt.Fprintf(out, "Failed to create product: %v\n", err)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
