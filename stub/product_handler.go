package stub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/harvesthub-seeder/api"
	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
	"github.com/shopspring/decimal"
)

// UploadProductHandler handles POST /api/products/upload. It accepts
// multipart/form-data and application/x-www-form-urlencoded bodies.
func (s *Server) UploadProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Upload Product API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", "", http.StatusMethodNotAllowed)
		return
	}

	subject, err := utils.ValidateToken(bearerToken(r), s.secret)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Token rejected: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Caller: %s", subject))

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxUploadMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error parsing form data: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", "", http.StatusBadRequest)
		return
	}

	product, msg := productFromForm(r)
	if msg != "" {
		utils.RespondError(w, &logMessageBuilder, msg, "VALIDATION_ERROR", http.StatusBadRequest)
		return
	}

	images, err := readImages(r)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error reading images: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error reading images", "", http.StatusInternalServerError)
		return
	}
	for _, img := range images {
		product.Images = append(product.Images, "/uploads/products/"+img.Filename)
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Processed %d images", len(images)))

	product.ID = models.ProductID(uuid.NewString())
	product.CreatedAt = time.Now()
	s.save(product, images)

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Product %s created", product.ID))
	utils.RespondJSON(w, http.StatusOK, UploadResponse{
		Message:        "Product created successfully",
		Product:        product,
		ImagesUploaded: len(images),
	})
}

// productFromForm builds a product from the request form. A non-empty message
// describes the first validation failure.
func productFromForm(r *http.Request) (models.Product, string) {
	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := strings.TrimSpace(r.FormValue("category"))

	if name == "" {
		return models.Product{}, "Product name is required"
	}
	if description == "" {
		return models.Product{}, "Product description is required"
	}
	if category == "" {
		return models.Product{}, "Product category is required"
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil || !price.IsPositive() {
		return models.Product{}, "A valid product price is required"
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		return models.Product{}, "A valid product stock is required"
	}

	var weight decimal.NullDecimal
	if raw := strings.TrimSpace(r.FormValue("weight")); raw != "" {
		w, err := decimal.NewFromString(raw)
		if err != nil || w.IsNegative() {
			return models.Product{}, "Product weight must be a non-negative number"
		}
		weight = decimal.NewNullDecimal(w)
	}

	var specs map[string]string
	if raw := r.FormValue("specifications"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &specs); err != nil {
			return models.Product{}, "Specifications must be a JSON object"
		}
	}

	status := r.FormValue("status")
	if status == "" {
		status = "active"
	}

	return models.Product{
		Name:                name,
		ShortDescription:    strings.TrimSpace(r.FormValue("shortDescription")),
		Description:         description,
		Category:            category,
		Price:               price,
		Stock:               stock,
		Weight:              weight,
		Unit:                r.FormValue("unit"),
		Origin:              r.FormValue("origin"),
		ExpiryDate:          r.FormValue("expiryDate"),
		StorageInstructions: r.FormValue("storageInstructions"),
		Status:              status,
		SellerID:            strings.TrimSpace(r.FormValue("sellerId")),
		Specifications:      specs,
	}, ""
}

func readImages(r *http.Request) ([]UploadedImage, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var images []UploadedImage
	for _, fileHeader := range r.MultipartForm.File[api.ImagesField] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		images = append(images, UploadedImage{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return images, nil
}
