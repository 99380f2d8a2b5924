package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/tably/tably/internal/api/v1"
	"github.com/tably/tably/internal/domain"
)

// ---------------------------------------------------------------------------
// GET /public/menu
// ---------------------------------------------------------------------------

func TestGetPublicMenu(t *testing.T) {
	t.Parallel()

	t.Run("groups_available_items_by_category", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		starters := uuid.New()
		mains := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				listFunc: func(_ context.Context, restaurantID uuid.UUID) ([]*domain.Category, error) {
					assert.Equal(t, rest.ID, restaurantID)
					return []*domain.Category{
						{ID: starters, RestaurantID: rest.ID, Name: "Starters", Position: 0},
						{ID: mains, RestaurantID: rest.ID, Name: "Mains", Position: 1},
					}, nil
				},
			},
			subcategories: &mockSubcategoryRepo{
				listByCategoryFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.Subcategory, error) {
					return nil, nil
				},
			},
			menuItems: &mockMenuItemRepo{
				listAvailableFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.MenuItem, error) {
					return []*domain.MenuItem{
						{ID: uuid.New(), CategoryID: starters, Name: "Bruschetta", PriceCents: 650, IsAvailable: true},
						{ID: uuid.New(), CategoryID: mains, Name: "Risotto", PriceCents: 1600, IsAvailable: true},
						{ID: uuid.New(), CategoryID: mains, Name: "Steak", PriceCents: 2900, IsAvailable: true},
					}, nil
				},
			},
		}
		v1.RegisterPublicMenuRoutes(api, store)

		resp := api.GetCtx(restaurantCtx(rest), "/public/menu")

		require.Equal(t, http.StatusOK, resp.Code)

		var sections []struct {
			Category struct {
				Name string `json:"Name"`
			} `json:"category"`
			Items []struct {
				Name string `json:"Name"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &sections))
		require.Len(t, sections, 2)
		assert.Equal(t, "Starters", sections[0].Category.Name)
		assert.Len(t, sections[0].Items, 1)
		assert.Equal(t, "Mains", sections[1].Category.Name)
		assert.Len(t, sections[1].Items, 2)
	})

	t.Run("missing_tenant_context", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			categories:    &mockCategoryRepo{},
			subcategories: &mockSubcategoryRepo{},
			menuItems:     &mockMenuItemRepo{},
		}
		v1.RegisterPublicMenuRoutes(api, store)

		resp := api.GetCtx(context.Background(), "/public/menu")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// Category management
// ---------------------------------------------------------------------------

func TestCreateCategory(t *testing.T) {
	t.Parallel()

	rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

	var created *domain.Category
	_, api := humatest.New(t)
	store := &mockDataStore{
		categories: &mockCategoryRepo{
			createFunc: func(_ context.Context, c *domain.Category) error {
				created = c
				return nil
			},
		},
	}
	v1.RegisterMenuRoutes(api, store, nil)

	resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/categories", map[string]any{
		"name":     "Desserts",
		"position": 3,
	})

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, created)
	assert.Equal(t, rest.ID, created.RestaurantID)
	assert.Equal(t, "Desserts", created.Name)
	assert.Equal(t, 3, created.Position)
}

func TestReorderCategories(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		a, b := uuid.New(), uuid.New()

		var gotIDs []uuid.UUID
		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				reorderFunc: func(_ context.Context, restaurantID uuid.UUID, ids []uuid.UUID) error {
					assert.Equal(t, rest.ID, restaurantID)
					gotIDs = ids
					return nil
				},
				listFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.Category, error) {
					return []*domain.Category{
						{ID: b, Position: 0},
						{ID: a, Position: 1},
					}, nil
				},
			},
		}
		v1.RegisterMenuRoutes(api, store, nil)

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/categories/reorder", map[string]any{
			"ids": []string{b.String(), a.String()},
		})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, []uuid.UUID{b, a}, gotIDs)
	})

	t.Run("unknown_category", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				reorderFunc: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
					return domain.ErrNotFound
				},
			},
		}
		v1.RegisterMenuRoutes(api, store, nil)

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/categories/reorder", map[string]any{
			"ids": []string{uuid.New().String()},
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Parallel()

	t.Run("cascade_then_image_cleanup", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		catID := uuid.New()

		var cascaded bool
		storage := &mockObjectStorage{baseURL: "https://cdn.example.com/"}
		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				deleteCascadeFunc: func(_ context.Context, restaurantID, id uuid.UUID) error {
					assert.Equal(t, rest.ID, restaurantID)
					assert.Equal(t, catID, id)
					// Objects must still exist while rows are being removed.
					assert.Empty(t, storage.deleted)
					cascaded = true
					return nil
				},
			},
			menuItems: &mockMenuItemRepo{
				listByCategoryFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.MenuItem, error) {
					return []*domain.MenuItem{
						{ID: uuid.New(), ImageURL: "https://cdn.example.com/menu/a.jpg"},
						{ID: uuid.New(), ImageURL: ""},
						{ID: uuid.New(), ImageURL: "https://elsewhere.example.com/b.jpg"},
					}, nil
				},
			},
		}
		v1.RegisterMenuRoutes(api, store, storage)

		resp := api.DeleteCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/categories/"+catID.String())

		require.Equal(t, http.StatusNoContent, resp.Code)
		assert.True(t, cascaded)
		// Only objects under our base URL are deleted; foreign URLs are skipped.
		assert.Equal(t, []string{"menu/a.jpg"}, storage.deleted)
	})

	t.Run("object_delete_failure_is_not_fatal", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		storage := &mockObjectStorage{
			baseURL:   "https://cdn.example.com/",
			deleteErr: errors.New("s3: access denied"),
		}

		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				deleteCascadeFunc: func(_ context.Context, _, _ uuid.UUID) error { return nil },
			},
			menuItems: &mockMenuItemRepo{
				listByCategoryFunc: func(_ context.Context, _, _ uuid.UUID) ([]*domain.MenuItem, error) {
					return []*domain.MenuItem{{ID: uuid.New(), ImageURL: "https://cdn.example.com/menu/a.jpg"}}, nil
				},
			},
		}
		v1.RegisterMenuRoutes(api, store, storage)

		resp := api.DeleteCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/categories/"+uuid.New().String())

		assert.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				deleteCascadeFunc: func(_ context.Context, _, _ uuid.UUID) error {
					return domain.ErrNotFound
				},
			},
		}
		v1.RegisterMenuRoutes(api, store, nil)

		resp := api.DeleteCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/categories/"+uuid.New().String())

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// Menu items
// ---------------------------------------------------------------------------

func TestCreateMenuItem(t *testing.T) {
	t.Parallel()

	t.Run("defaults_to_available", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		catID := uuid.New()

		var created *domain.MenuItem
		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.Category, error) {
					assert.Equal(t, catID, id)
					return &domain.Category{ID: id, RestaurantID: rest.ID}, nil
				},
			},
			menuItems: &mockMenuItemRepo{
				createFunc: func(_ context.Context, m *domain.MenuItem) error {
					created = m
					return nil
				},
			},
		}
		v1.RegisterMenuRoutes(api, store, nil)

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/items", map[string]any{
			"category_id": catID.String(),
			"name":        "Margherita",
			"price_cents": 1200,
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, created)
		assert.True(t, created.IsAvailable)
		assert.Equal(t, int64(1200), created.PriceCents)
		assert.Equal(t, rest.ID, created.RestaurantID)
	})

	t.Run("unknown_category_rejected", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		_, api := humatest.New(t)
		store := &mockDataStore{
			categories: &mockCategoryRepo{
				getByIDFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Category, error) {
					return nil, domain.ErrNotFound
				},
			},
			menuItems: &mockMenuItemRepo{},
		}
		v1.RegisterMenuRoutes(api, store, nil)

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/items", map[string]any{
			"category_id": uuid.New().String(),
			"name":        "Ghost dish",
			"price_cents": 100,
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestUpdateMenuItem(t *testing.T) {
	t.Parallel()

	rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
	itemID := uuid.New()

	var updated *domain.MenuItem
	_, api := humatest.New(t)
	store := &mockDataStore{
		menuItems: &mockMenuItemRepo{
			getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.MenuItem, error) {
				return &domain.MenuItem{
					ID: id, RestaurantID: rest.ID, Name: "Old name",
					PriceCents: 1000, IsAvailable: true,
				}, nil
			},
			updateFunc: func(_ context.Context, m *domain.MenuItem) error {
				updated = m
				return nil
			},
		},
	}
	v1.RegisterMenuRoutes(api, store, nil)

	resp := api.PutCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/items/"+itemID.String(), map[string]any{
		"price_cents":  1500,
		"is_available": false,
	})

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, updated)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Old name", updated.Name)
	assert.Equal(t, int64(1500), updated.PriceCents)
	assert.False(t, updated.IsAvailable)
}

func TestDeleteMenuItem(t *testing.T) {
	t.Parallel()

	rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
	itemID := uuid.New()
	storage := &mockObjectStorage{baseURL: "https://cdn.example.com/"}

	var deleted bool
	_, api := humatest.New(t)
	store := &mockDataStore{
		menuItems: &mockMenuItemRepo{
			getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.MenuItem, error) {
				return &domain.MenuItem{ID: id, ImageURL: "https://cdn.example.com/menu/x.png"}, nil
			},
			deleteFunc: func(_ context.Context, restaurantID, id uuid.UUID) error {
				assert.Equal(t, rest.ID, restaurantID)
				assert.Equal(t, itemID, id)
				deleted = true
				return nil
			},
		},
	}
	v1.RegisterMenuRoutes(api, store, storage)

	resp := api.DeleteCtx(staffCtx(rest, uuid.New(), domain.RoleManager), "/menu/items/"+itemID.String())

	require.Equal(t, http.StatusNoContent, resp.Code)
	assert.True(t, deleted)
	assert.Equal(t, []string{"menu/x.png"}, storage.deleted)
}

// ---------------------------------------------------------------------------
// POST /menu/items/{id}/image
// ---------------------------------------------------------------------------

func multipartImage(t *testing.T, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="dish.bin"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-image-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadRouter(store *mockDataStore, storage v1.ObjectStorage) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/menu/items/{id}/image", v1.MenuImageUploadHandler(store, storage))
	return r
}

func TestMenuImageUpload(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		itemID := uuid.New()
		storage := &mockObjectStorage{baseURL: "https://cdn.example.com/"}

		var savedURL string
		store := &mockDataStore{
			menuItems: &mockMenuItemRepo{
				getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.MenuItem, error) {
					return &domain.MenuItem{ID: id, RestaurantID: rest.ID, Name: "Cake"}, nil
				},
				setImageURLFunc: func(_ context.Context, restaurantID, id uuid.UUID, url string) error {
					assert.Equal(t, rest.ID, restaurantID)
					assert.Equal(t, itemID, id)
					savedURL = url
					return nil
				},
			},
		}

		body, formType := multipartImage(t, "image/png")
		req := httptest.NewRequest(http.MethodPost, "/menu/items/"+itemID.String()+"/image", body)
		req.Header.Set("Content-Type", formType)
		req = req.WithContext(restaurantCtx(rest))

		rec := httptest.NewRecorder()
		uploadRouter(store, storage).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		wantURL := "https://cdn.example.com/menu/" + rest.ID.String() + "/" + itemID.String() + ".png"
		assert.Equal(t, wantURL, savedURL)

		var out struct {
			ID       uuid.UUID `json:"id"`
			ImageURL string    `json:"image_url"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, itemID, out.ID)
		assert.Equal(t, wantURL, out.ImageURL)
	})

	t.Run("unsupported_media_type", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		itemID := uuid.New()
		storage := &mockObjectStorage{baseURL: "https://cdn.example.com/"}

		store := &mockDataStore{
			menuItems: &mockMenuItemRepo{
				getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.MenuItem, error) {
					return &domain.MenuItem{ID: id}, nil
				},
			},
		}

		body, formType := multipartImage(t, "application/pdf")
		req := httptest.NewRequest(http.MethodPost, "/menu/items/"+itemID.String()+"/image", body)
		req.Header.Set("Content-Type", formType)
		req = req.WithContext(restaurantCtx(rest))

		rec := httptest.NewRecorder()
		uploadRouter(store, storage).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("storage_not_configured", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		body, formType := multipartImage(t, "image/jpeg")
		req := httptest.NewRequest(http.MethodPost, "/menu/items/"+uuid.New().String()+"/image", body)
		req.Header.Set("Content-Type", formType)
		req = req.WithContext(restaurantCtx(rest))

		rec := httptest.NewRecorder()
		uploadRouter(&mockDataStore{}, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})

	t.Run("unknown_item", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		storage := &mockObjectStorage{baseURL: "https://cdn.example.com/"}

		store := &mockDataStore{
			menuItems: &mockMenuItemRepo{
				getByIDFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.MenuItem, error) {
					return nil, domain.ErrNotFound
				},
			},
		}

		body, formType := multipartImage(t, "image/jpeg")
		req := httptest.NewRequest(http.MethodPost, "/menu/items/"+uuid.New().String()+"/image", body)
		req.Header.Set("Content-Type", formType)
		req = req.WithContext(restaurantCtx(rest))

		rec := httptest.NewRecorder()
		uploadRouter(store, storage).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
