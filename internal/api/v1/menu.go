package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/tenant"
)

type CreateCategoryInput struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"255" doc:"Category name"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Description"`
		Position    int    `json:"position,omitempty" doc:"Sort position"`
	}
}

type CreateCategoryOutput struct {
	Body *domain.Category
}

type ListCategoriesOutput struct {
	Body []*domain.Category
}

type UpdateCategoryInput struct {
	ID   uuid.UUID `path:"id" doc:"Category ID"`
	Body struct {
		Name        string `json:"name,omitempty" maxLength:"255" doc:"Category name"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Description"`
		Position    *int   `json:"position,omitempty" doc:"Sort position"`
	}
}

type UpdateCategoryOutput struct {
	Body *domain.Category
}

type ReorderCategoriesInput struct {
	Body struct {
		IDs []uuid.UUID `json:"ids" minItems:"1" doc:"Category IDs in display order"`
	}
}

type DeleteCategoryInput struct {
	ID uuid.UUID `path:"id" doc:"Category ID"`
}

type CreateSubcategoryInput struct {
	Body struct {
		CategoryID uuid.UUID `json:"category_id" doc:"Parent category ID"`
		Name       string    `json:"name" minLength:"1" maxLength:"255" doc:"Subcategory name"`
		Position   int       `json:"position,omitempty" doc:"Sort position"`
	}
}

type CreateSubcategoryOutput struct {
	Body *domain.Subcategory
}

type ListSubcategoriesInput struct {
	CategoryID uuid.UUID `query:"category_id" required:"true" doc:"Parent category ID"`
}

type ListSubcategoriesOutput struct {
	Body []*domain.Subcategory
}

type UpdateSubcategoryInput struct {
	ID   uuid.UUID `path:"id" doc:"Subcategory ID"`
	Body struct {
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Subcategory name"`
		Position *int   `json:"position,omitempty" doc:"Sort position"`
	}
}

type UpdateSubcategoryOutput struct {
	Body *domain.Subcategory
}

type DeleteSubcategoryInput struct {
	ID uuid.UUID `path:"id" doc:"Subcategory ID"`
}

type CreateMenuItemInput struct {
	Body struct {
		CategoryID    uuid.UUID  `json:"category_id" doc:"Category ID"`
		SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty" doc:"Optional subcategory ID"`
		Name          string     `json:"name" minLength:"1" maxLength:"255" doc:"Item name"`
		Description   string     `json:"description,omitempty" maxLength:"2000" doc:"Description"`
		PriceCents    int64      `json:"price_cents" minimum:"0" doc:"Unit price in cents"`
		IsAvailable   *bool      `json:"is_available,omitempty" doc:"Availability, defaults to true"`
		Position      int        `json:"position,omitempty" doc:"Sort position"`
	}
}

type CreateMenuItemOutput struct {
	Body *domain.MenuItem
}

type ListMenuItemsInput struct {
	CategoryID uuid.UUID `query:"category_id" doc:"Filter by category"`
}

type ListMenuItemsOutput struct {
	Body []*domain.MenuItem
}

type UpdateMenuItemInput struct {
	ID   uuid.UUID `path:"id" doc:"Item ID"`
	Body struct {
		CategoryID    *uuid.UUID `json:"category_id,omitempty" doc:"Category ID"`
		SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty" doc:"Subcategory ID"`
		Name          string     `json:"name,omitempty" maxLength:"255" doc:"Item name"`
		Description   string     `json:"description,omitempty" maxLength:"2000" doc:"Description"`
		PriceCents    *int64     `json:"price_cents,omitempty" minimum:"0" doc:"Unit price in cents"`
		IsAvailable   *bool      `json:"is_available,omitempty" doc:"Availability"`
		Position      *int       `json:"position,omitempty" doc:"Sort position"`
	}
}

type UpdateMenuItemOutput struct {
	Body *domain.MenuItem
}

type DeleteMenuItemInput struct {
	ID uuid.UUID `path:"id" doc:"Item ID"`
}

// PublicMenuSection is one category with its subcategories and available
// items, ready for storefront rendering.
type PublicMenuSection struct {
	Category      *domain.Category      `json:"category"`
	Subcategories []*domain.Subcategory `json:"subcategories,omitempty"`
	Items         []*domain.MenuItem    `json:"items"`
}

type PublicMenuOutput struct {
	Body []*PublicMenuSection
}

// RegisterPublicMenuRoutes registers the unauthenticated menu listing.
// Unavailable items are filtered out server-side.
func RegisterPublicMenuRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-public-menu",
		Method:      http.MethodGet,
		Path:        "/public/menu",
		Summary:     "Get the resolved restaurant's menu",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*PublicMenuOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		categories, err := store.Categories().List(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list categories", err)
		}

		items, err := store.MenuItems().ListAvailable(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list menu items", err)
		}

		itemsByCategory := make(map[uuid.UUID][]*domain.MenuItem, len(categories))
		for _, it := range items {
			itemsByCategory[it.CategoryID] = append(itemsByCategory[it.CategoryID], it)
		}

		sections := make([]*PublicMenuSection, 0, len(categories))
		for _, c := range categories {
			subs, err := store.Subcategories().ListByCategory(ctx, restaurantID, c.ID)
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to list subcategories", err)
			}
			sections = append(sections, &PublicMenuSection{
				Category:      c,
				Subcategories: subs,
				Items:         itemsByCategory[c.ID],
			})
		}

		return &PublicMenuOutput{Body: sections}, nil
	})
}

// RegisterMenuRoutes registers the staff menu management endpoints.
func RegisterMenuRoutes(api huma.API, store DataStore, objectStorage ObjectStorage) {
	registerCategoryRoutes(api, store, objectStorage)
	registerSubcategoryRoutes(api, store)
	registerMenuItemRoutes(api, store, objectStorage)
}

func registerCategoryRoutes(api huma.API, store DataStore, objectStorage ObjectStorage) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/menu/categories",
		Summary:     "Create a menu category",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		now := time.Now()
		c := &domain.Category{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Name:         input.Body.Name,
			Description:  input.Body.Description,
			Position:     input.Body.Position,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := store.Categories().Create(ctx, c); err != nil {
			return nil, huma.Error500InternalServerError("failed to create category", err)
		}

		return &CreateCategoryOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/menu/categories",
		Summary:     "List menu categories",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		categories, err := store.Categories().List(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list categories", err)
		}

		return &ListCategoriesOutput{Body: categories}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPut,
		Path:        "/menu/categories/{id}",
		Summary:     "Update a menu category",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		existing, err := store.Categories().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to get category", err)
		}

		if input.Body.Name != "" {
			existing.Name = input.Body.Name
		}
		if input.Body.Description != "" {
			existing.Description = input.Body.Description
		}
		if input.Body.Position != nil {
			existing.Position = *input.Body.Position
		}

		if err := store.Categories().Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update category", err)
		}

		return &UpdateCategoryOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-categories",
		Method:      http.MethodPost,
		Path:        "/menu/categories/reorder",
		Summary:     "Reorder menu categories",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *ReorderCategoriesInput) (*ListCategoriesOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if err := store.Categories().Reorder(ctx, restaurantID, input.Body.IDs); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to reorder categories", err)
		}

		categories, err := store.Categories().List(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list categories", err)
		}

		return &ListCategoriesOutput{Body: categories}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/menu/categories/{id}",
		Summary:     "Delete a category with its subcategories and items",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		// Collect image URLs first; the objects are removed after the rows so
		// a failed delete never leaves dangling references.
		var imageURLs []string
		if objectStorage != nil {
			items, err := store.MenuItems().ListByCategory(ctx, restaurantID, input.ID)
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to list category items", err)
			}
			for _, it := range items {
				if it.ImageURL != "" {
					imageURLs = append(imageURLs, it.ImageURL)
				}
			}
		}

		if err := store.Categories().DeleteCascade(ctx, restaurantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete category", err)
		}

		// Best effort: orphaned objects are logged, not fatal.
		for _, u := range imageURLs {
			if key := objectStorage.KeyFromURL(u); key != "" {
				if err := objectStorage.Delete(ctx, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("menu: failed to delete image object")
				}
			}
		}

		return nil, nil
	})
}

func registerSubcategoryRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-subcategory",
		Method:      http.MethodPost,
		Path:        "/menu/subcategories",
		Summary:     "Create a subcategory",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *CreateSubcategoryInput) (*CreateSubcategoryOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if _, err := store.Categories().GetByID(ctx, restaurantID, input.Body.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate category", err)
		}

		now := time.Now()
		s := &domain.Subcategory{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			CategoryID:   input.Body.CategoryID,
			Name:         input.Body.Name,
			Position:     input.Body.Position,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := store.Subcategories().Create(ctx, s); err != nil {
			return nil, huma.Error500InternalServerError("failed to create subcategory", err)
		}

		return &CreateSubcategoryOutput{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-subcategories",
		Method:      http.MethodGet,
		Path:        "/menu/subcategories",
		Summary:     "List subcategories of a category",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *ListSubcategoriesInput) (*ListSubcategoriesOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		subs, err := store.Subcategories().ListByCategory(ctx, restaurantID, input.CategoryID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list subcategories", err)
		}

		return &ListSubcategoriesOutput{Body: subs}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-subcategory",
		Method:      http.MethodPut,
		Path:        "/menu/subcategories/{id}",
		Summary:     "Update a subcategory",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *UpdateSubcategoryInput) (*UpdateSubcategoryOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		s := &domain.Subcategory{
			ID:           input.ID,
			RestaurantID: restaurantID,
			Name:         input.Body.Name,
		}
		if input.Body.Position != nil {
			s.Position = *input.Body.Position
		}

		if err := store.Subcategories().Update(ctx, s); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("subcategory not found")
			}
			return nil, huma.Error500InternalServerError("failed to update subcategory", err)
		}

		return &UpdateSubcategoryOutput{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-subcategory",
		Method:      http.MethodDelete,
		Path:        "/menu/subcategories/{id}",
		Summary:     "Delete a subcategory",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *DeleteSubcategoryInput) (*struct{}, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if err := store.Subcategories().Delete(ctx, restaurantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("subcategory not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete subcategory", err)
		}

		return nil, nil
	})
}

func registerMenuItemRoutes(api huma.API, store DataStore, objectStorage ObjectStorage) {
	huma.Register(api, huma.Operation{
		OperationID: "create-menu-item",
		Method:      http.MethodPost,
		Path:        "/menu/items",
		Summary:     "Create a menu item",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *CreateMenuItemInput) (*CreateMenuItemOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if _, err := store.Categories().GetByID(ctx, restaurantID, input.Body.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("category not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate category", err)
		}

		available := true
		if input.Body.IsAvailable != nil {
			available = *input.Body.IsAvailable
		}

		now := time.Now()
		m := &domain.MenuItem{
			ID:            uuid.New(),
			RestaurantID:  restaurantID,
			CategoryID:    input.Body.CategoryID,
			SubcategoryID: input.Body.SubcategoryID,
			Name:          input.Body.Name,
			Description:   input.Body.Description,
			PriceCents:    input.Body.PriceCents,
			IsAvailable:   available,
			Position:      input.Body.Position,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := store.MenuItems().Create(ctx, m); err != nil {
			return nil, huma.Error500InternalServerError("failed to create menu item", err)
		}

		return &CreateMenuItemOutput{Body: m}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-menu-items",
		Method:      http.MethodGet,
		Path:        "/menu/items",
		Summary:     "List menu items",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *ListMenuItemsInput) (*ListMenuItemsOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		var (
			items []*domain.MenuItem
			err   error
		)
		if input.CategoryID != uuid.Nil {
			items, err = store.MenuItems().ListByCategory(ctx, restaurantID, input.CategoryID)
		} else {
			items, err = store.MenuItems().List(ctx, restaurantID)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list menu items", err)
		}

		return &ListMenuItemsOutput{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-menu-item",
		Method:      http.MethodPut,
		Path:        "/menu/items/{id}",
		Summary:     "Update a menu item",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *UpdateMenuItemInput) (*UpdateMenuItemOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		existing, err := store.MenuItems().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("menu item not found")
			}
			return nil, huma.Error500InternalServerError("failed to get menu item", err)
		}

		if input.Body.CategoryID != nil {
			existing.CategoryID = *input.Body.CategoryID
		}
		if input.Body.SubcategoryID != nil {
			existing.SubcategoryID = input.Body.SubcategoryID
		}
		if input.Body.Name != "" {
			existing.Name = input.Body.Name
		}
		if input.Body.Description != "" {
			existing.Description = input.Body.Description
		}
		if input.Body.PriceCents != nil {
			existing.PriceCents = *input.Body.PriceCents
		}
		if input.Body.IsAvailable != nil {
			existing.IsAvailable = *input.Body.IsAvailable
		}
		if input.Body.Position != nil {
			existing.Position = *input.Body.Position
		}

		if err := store.MenuItems().Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update menu item", err)
		}

		return &UpdateMenuItemOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-menu-item",
		Method:      http.MethodDelete,
		Path:        "/menu/items/{id}",
		Summary:     "Delete a menu item",
		Tags:        []string{"Menu"},
	}, func(ctx context.Context, input *DeleteMenuItemInput) (*struct{}, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		existing, err := store.MenuItems().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("menu item not found")
			}
			return nil, huma.Error500InternalServerError("failed to get menu item", err)
		}

		if err := store.MenuItems().Delete(ctx, restaurantID, input.ID); err != nil {
			return nil, huma.Error500InternalServerError("failed to delete menu item", err)
		}

		if objectStorage != nil && existing.ImageURL != "" {
			if key := objectStorage.KeyFromURL(existing.ImageURL); key != "" {
				if err := objectStorage.Delete(ctx, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("menu: failed to delete image object")
				}
			}
		}

		return nil, nil
	})
}

const maxImageUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// MenuImageUploadHandler handles multipart image upload for a menu item. It
// lives outside the typed API because huma's JSON pipeline does not fit
// multipart bodies; the route is mounted on the same authenticated group.
func MenuImageUploadHandler(store DataStore, objectStorage ObjectStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if objectStorage == nil {
			http.Error(w, `{"title":"Not Implemented","status":501,"detail":"object storage is not configured"}`, http.StatusNotImplemented)
			return
		}

		restaurantID, ok := tenant.IDFromContext(r.Context())
		if !ok {
			http.Error(w, `{"title":"Bad Request","status":400,"detail":"restaurant context missing"}`, http.StatusBadRequest)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, `{"title":"Bad Request","status":400,"detail":"invalid menu item id"}`, http.StatusBadRequest)
			return
		}

		item, err := store.MenuItems().GetByID(r.Context(), restaurantID, itemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, `{"title":"Not Found","status":404,"detail":"menu item not found"}`, http.StatusNotFound)
				return
			}
			http.Error(w, `{"title":"Internal Server Error","status":500,"detail":"failed to get menu item"}`, http.StatusInternalServerError)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, `{"title":"Bad Request","status":400,"detail":"missing or oversized image field"}`, http.StatusBadRequest)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ext, allowed := allowedImageTypes[contentType]
		if !allowed {
			http.Error(w, `{"title":"Unsupported Media Type","status":415,"detail":"image must be jpeg, png or webp"}`, http.StatusUnsupportedMediaType)
			return
		}

		key := fmt.Sprintf("menu/%s/%s%s", restaurantID, itemID, ext)
		url, err := objectStorage.Upload(r.Context(), key, file, contentType)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("menu: image upload failed")
			http.Error(w, `{"title":"Internal Server Error","status":500,"detail":"failed to upload image"}`, http.StatusInternalServerError)
			return
		}

		if err := store.MenuItems().SetImageURL(r.Context(), restaurantID, itemID, url); err != nil {
			http.Error(w, `{"title":"Internal Server Error","status":500,"detail":"failed to save image URL"}`, http.StatusInternalServerError)
			return
		}
		item.ImageURL = url

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"id":%q,"image_url":%q}`, item.ID, url)
	}
}
