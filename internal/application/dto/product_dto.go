package dto

import (
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CategorySlug    string     `json:"categorySlug" validate:"required"`
	SubcategorySlug string     `json:"subcategorySlug,omitempty"`
	Row             entity.Row `json:"row" validate:"required"`
}

// CreateProductResponse salida de la creación.
type CreateProductResponse struct {
	OK  bool   `json:"ok"`
	Kod string `json:"kod"`
}

// ProductUpdateFields esquema público de UpdateProduct. Sus etiquetas json deben coincidir
// con entity.UpdatableProductFields (lo verifica un test).
type ProductUpdateFields struct {
	CategorySlug       *string `json:"categorySlug,omitempty"`
	SubcategorySlug    *string `json:"subcategorySlug,omitempty"`
	Nazwa              *string `json:"Nazwa,omitempty"`
	CenaNetto          *string `json:"CenaNetto,omitempty"`
	JednostkaMiary     *string `json:"JednostkaMiary,omitempty"`
	StawkaVAT          *string `json:"StawkaVAT,omitempty"`
	Opis               *string `json:"Opis,omitempty"`
	ImageStorageID     *string `json:"imageStorageId,omitempty"`
	ThumbnailStorageID *string `json:"thumbnailStorageId,omitempty"`
}

// Updates convierte los campos presentes en el mapa que recibe UpdateProduct.
func (f ProductUpdateFields) Updates() map[string]string {
	out := make(map[string]string)
	set := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	set(entity.FieldCategorySlug, f.CategorySlug)
	set(entity.FieldSubcategorySlug, f.SubcategorySlug)
	set(entity.FieldNazwa, f.Nazwa)
	set(entity.FieldCenaNetto, f.CenaNetto)
	set(entity.FieldJednostkaMiary, f.JednostkaMiary)
	set(entity.FieldStawkaVAT, f.StawkaVAT)
	set(entity.FieldOpis, f.Opis)
	set(entity.FieldImageStorageID, f.ImageStorageID)
	set(entity.FieldThumbnailStorageID, f.ThumbnailStorageID)
	return out
}

// DeleteProductResponse salida del borrado de un producto.
type DeleteProductResponse struct {
	OK    bool               `json:"ok"`
	Kod   string             `json:"kod"`
	Media MediaCleanupResult `json:"media"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 string            `json:"id"`
	Kod                string            `json:"Kod"`
	Nazwa              string            `json:"Nazwa"`
	CenaNetto          string            `json:"CenaNetto"`
	JednostkaMiary     string            `json:"JednostkaMiary"`
	StawkaVAT          string            `json:"StawkaVAT"`
	Opis               string            `json:"Opis,omitempty"`
	Attributes         map[string]string `json:"attributes,omitempty"`
	CategorySlug       string            `json:"categorySlug"`
	SubcategorySlug    string            `json:"subcategorySlug,omitempty"`
	ImageStorageID     string            `json:"imageStorageId,omitempty"`
	ThumbnailStorageID string            `json:"thumbnailStorageId,omitempty"`
	ImageURL           string            `json:"imageUrl,omitempty"`
	ThumbnailURL       string            `json:"thumbnailUrl,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// UploadURLRequest primera fase del handshake de imagen.
type UploadURLRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp image/gif"`
	Kind        string `json:"kind" validate:"omitempty,oneof=image thumbnail"`
}

// UploadURLResponse destino de subida de corta duración.
type UploadURLResponse struct {
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	StorageID string            `json:"storageId"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// AttachImageRequest fase final: asocia los archivos subidos al producto.
type AttachImageRequest struct {
	ImageStorageID     string `json:"imageStorageId" validate:"required"`
	ThumbnailStorageID string `json:"thumbnailStorageId,omitempty"`
}

// UpdateProductResponse campos efectivamente aplicados (las claves fuera de la lista blanca no aparecen).
type UpdateProductResponse struct {
	OK      bool               `json:"ok"`
	Kod     string             `json:"kod"`
	Updated map[string]string  `json:"updated"`
	Media   MediaCleanupResult `json:"media"`
}
