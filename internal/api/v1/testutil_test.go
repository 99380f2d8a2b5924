package v1_test

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/mailer"
	"github.com/tably/tably/internal/server/middleware"
	"github.com/tably/tably/internal/tenant"
)

// ---------------------------------------------------------------------------
// Context helpers that inject tenant/user/role for DoCtx requests
// ---------------------------------------------------------------------------

func restaurantCtx(r *domain.Restaurant) context.Context {
	return tenant.WithRestaurant(context.Background(), r)
}

func staffCtx(r *domain.Restaurant, userID uuid.UUID, role string) context.Context {
	ctx := restaurantCtx(r)
	ctx = context.WithValue(ctx, middleware.ContextKeyTokenTenantID, r.ID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, role)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	restaurants   domain.RestaurantRepository
	users         domain.UserRepository
	categories    domain.CategoryRepository
	subcategories domain.SubcategoryRepository
	menuItems     domain.MenuItemRepository
	orders        domain.OrderRepository
	reservations  domain.ReservationRepository
	feedback      domain.FeedbackRepository
	settings      domain.SettingsRepository
	dashboard     domain.DashboardRepository

	bootstrapFunc func(ctx context.Context, rest *domain.Restaurant, owner *domain.User, settings *domain.RestaurantSettings) error
}

func (m *mockDataStore) Restaurants() domain.RestaurantRepository    { return m.restaurants }
func (m *mockDataStore) Users() domain.UserRepository                { return m.users }
func (m *mockDataStore) Categories() domain.CategoryRepository       { return m.categories }
func (m *mockDataStore) Subcategories() domain.SubcategoryRepository { return m.subcategories }
func (m *mockDataStore) MenuItems() domain.MenuItemRepository        { return m.menuItems }
func (m *mockDataStore) Orders() domain.OrderRepository              { return m.orders }
func (m *mockDataStore) Reservations() domain.ReservationRepository  { return m.reservations }
func (m *mockDataStore) Feedback() domain.FeedbackRepository         { return m.feedback }
func (m *mockDataStore) Settings() domain.SettingsRepository         { return m.settings }
func (m *mockDataStore) Dashboard() domain.DashboardRepository       { return m.dashboard }

func (m *mockDataStore) Bootstrap(ctx context.Context, rest *domain.Restaurant, owner *domain.User, settings *domain.RestaurantSettings) error {
	return m.bootstrapFunc(ctx, rest, owner, settings)
}

// ---------------------------------------------------------------------------
// Mock RestaurantRepository
// ---------------------------------------------------------------------------

type mockRestaurantRepo struct {
	createFunc             func(ctx context.Context, r *domain.Restaurant) error
	getByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	updateFunc             func(ctx context.Context, r *domain.Restaurant) error
	deactivateFunc         func(ctx context.Context, id uuid.UUID) error
	findActiveBySlugFunc   func(ctx context.Context, slug string) (*domain.Restaurant, error)
	findActiveByDomainFunc func(ctx context.Context, d string) (*domain.Restaurant, error)
	findActiveByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
}

func (m *mockRestaurantRepo) Create(ctx context.Context, r *domain.Restaurant) error {
	return m.createFunc(ctx, r)
}

func (m *mockRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRestaurantRepo) Update(ctx context.Context, r *domain.Restaurant) error {
	return m.updateFunc(ctx, r)
}

func (m *mockRestaurantRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.deactivateFunc(ctx, id)
}

func (m *mockRestaurantRepo) FindActiveBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return m.findActiveBySlugFunc(ctx, slug)
}

func (m *mockRestaurantRepo) FindActiveByDomain(ctx context.Context, d string) (*domain.Restaurant, error) {
	return m.findActiveByDomainFunc(ctx, d)
}

func (m *mockRestaurantRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return m.findActiveByIDFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc     func(ctx context.Context, u *domain.User) error
	getByIDFunc    func(ctx context.Context, restaurantID, id uuid.UUID) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, restaurantID uuid.UUID, email string) (*domain.User, error)
	updateFunc     func(ctx context.Context, u *domain.User) error
	listFunc       func(ctx context.Context, restaurantID uuid.UUID) ([]*domain.User, error)
	deleteFunc     func(ctx context.Context, restaurantID, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, restaurantID, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, restaurantID uuid.UUID, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, restaurantID, email)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) List(ctx context.Context, restaurantID uuid.UUID) ([]*domain.User, error) {
	return m.listFunc(ctx, restaurantID)
}

func (m *mockUserRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return m.deleteFunc(ctx, restaurantID, id)
}

// ---------------------------------------------------------------------------
// Mock CategoryRepository
// ---------------------------------------------------------------------------

type mockCategoryRepo struct {
	createFunc        func(ctx context.Context, c *domain.Category) error
	getByIDFunc       func(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Category, error)
	listFunc          func(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Category, error)
	updateFunc        func(ctx context.Context, c *domain.Category) error
	reorderFunc       func(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) error
	deleteCascadeFunc func(ctx context.Context, restaurantID, id uuid.UUID) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return m.createFunc(ctx, c)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Category, error) {
	return m.getByIDFunc(ctx, restaurantID, id)
}

func (m *mockCategoryRepo) List(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Category, error) {
	return m.listFunc(ctx, restaurantID)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return m.updateFunc(ctx, c)
}

func (m *mockCategoryRepo) Reorder(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) error {
	return m.reorderFunc(ctx, restaurantID, ids)
}

func (m *mockCategoryRepo) DeleteCascade(ctx context.Context, restaurantID, id uuid.UUID) error {
	return m.deleteCascadeFunc(ctx, restaurantID, id)
}

// ---------------------------------------------------------------------------
// Mock SubcategoryRepository
// ---------------------------------------------------------------------------

type mockSubcategoryRepo struct {
	createFunc         func(ctx context.Context, s *domain.Subcategory) error
	listByCategoryFunc func(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*domain.Subcategory, error)
	updateFunc         func(ctx context.Context, s *domain.Subcategory) error
	deleteFunc         func(ctx context.Context, restaurantID, id uuid.UUID) error
}

func (m *mockSubcategoryRepo) Create(ctx context.Context, s *domain.Subcategory) error {
	return m.createFunc(ctx, s)
}

func (m *mockSubcategoryRepo) ListByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*domain.Subcategory, error) {
	return m.listByCategoryFunc(ctx, restaurantID, categoryID)
}

func (m *mockSubcategoryRepo) Update(ctx context.Context, s *domain.Subcategory) error {
	return m.updateFunc(ctx, s)
}

func (m *mockSubcategoryRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return m.deleteFunc(ctx, restaurantID, id)
}

// ---------------------------------------------------------------------------
// Mock MenuItemRepository
// ---------------------------------------------------------------------------

type mockMenuItemRepo struct {
	createFunc         func(ctx context.Context, mi *domain.MenuItem) error
	getByIDFunc        func(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error)
	listFunc           func(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error)
	listByCategoryFunc func(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*domain.MenuItem, error)
	listAvailableFunc  func(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error)
	updateFunc         func(ctx context.Context, mi *domain.MenuItem) error
	setImageURLFunc    func(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error
	deleteFunc         func(ctx context.Context, restaurantID, id uuid.UUID) error
}

func (m *mockMenuItemRepo) Create(ctx context.Context, mi *domain.MenuItem) error {
	return m.createFunc(ctx, mi)
}

func (m *mockMenuItemRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.MenuItem, error) {
	return m.getByIDFunc(ctx, restaurantID, id)
}

func (m *mockMenuItemRepo) List(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error) {
	return m.listFunc(ctx, restaurantID)
}

func (m *mockMenuItemRepo) ListByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]*domain.MenuItem, error) {
	return m.listByCategoryFunc(ctx, restaurantID, categoryID)
}

func (m *mockMenuItemRepo) ListAvailable(ctx context.Context, restaurantID uuid.UUID) ([]*domain.MenuItem, error) {
	return m.listAvailableFunc(ctx, restaurantID)
}

func (m *mockMenuItemRepo) Update(ctx context.Context, mi *domain.MenuItem) error {
	return m.updateFunc(ctx, mi)
}

func (m *mockMenuItemRepo) SetImageURL(ctx context.Context, restaurantID, id uuid.UUID, imageURL string) error {
	return m.setImageURLFunc(ctx, restaurantID, id, imageURL)
}

func (m *mockMenuItemRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return m.deleteFunc(ctx, restaurantID, id)
}

// ---------------------------------------------------------------------------
// Mock OrderRepository
// ---------------------------------------------------------------------------

type mockOrderRepo struct {
	createFunc        func(ctx context.Context, o *domain.Order, items []*domain.OrderItem) error
	getByIDFunc       func(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Order, error)
	getItemsFunc      func(ctx context.Context, restaurantID, orderID uuid.UUID) ([]*domain.OrderItem, error)
	listFunc          func(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Order, error)
	listActiveFunc    func(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Order, error)
	listBySessionFunc func(ctx context.Context, restaurantID uuid.UUID, sessionID string) ([]*domain.Order, error)
	updateStatusFunc  func(ctx context.Context, restaurantID, id uuid.UUID, status domain.OrderStatus) error
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order, items []*domain.OrderItem) error {
	return m.createFunc(ctx, o, items)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Order, error) {
	return m.getByIDFunc(ctx, restaurantID, id)
}

func (m *mockOrderRepo) GetItems(ctx context.Context, restaurantID, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return m.getItemsFunc(ctx, restaurantID, orderID)
}

func (m *mockOrderRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Order, error) {
	return m.listFunc(ctx, restaurantID, limit, offset)
}

func (m *mockOrderRepo) ListActive(ctx context.Context, restaurantID uuid.UUID) ([]*domain.Order, error) {
	return m.listActiveFunc(ctx, restaurantID)
}

func (m *mockOrderRepo) ListBySession(ctx context.Context, restaurantID uuid.UUID, sessionID string) ([]*domain.Order, error) {
	return m.listBySessionFunc(ctx, restaurantID, sessionID)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, status domain.OrderStatus) error {
	return m.updateStatusFunc(ctx, restaurantID, id, status)
}

// ---------------------------------------------------------------------------
// Mock ReservationRepository
// ---------------------------------------------------------------------------

type mockReservationRepo struct {
	createFunc       func(ctx context.Context, r *domain.Reservation) error
	getByIDFunc      func(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Reservation, error)
	listFunc         func(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Reservation, error)
	updateFunc       func(ctx context.Context, r *domain.Reservation) error
	updateStatusFunc func(ctx context.Context, restaurantID, id uuid.UUID, status domain.ReservationStatus) error
	deleteFunc       func(ctx context.Context, restaurantID, id uuid.UUID) error
}

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	return m.createFunc(ctx, r)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*domain.Reservation, error) {
	return m.getByIDFunc(ctx, restaurantID, id)
}

func (m *mockReservationRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Reservation, error) {
	return m.listFunc(ctx, restaurantID, limit, offset)
}

func (m *mockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	return m.updateFunc(ctx, r)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, status domain.ReservationStatus) error {
	return m.updateStatusFunc(ctx, restaurantID, id, status)
}

func (m *mockReservationRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return m.deleteFunc(ctx, restaurantID, id)
}

// ---------------------------------------------------------------------------
// Mock FeedbackRepository
// ---------------------------------------------------------------------------

type mockFeedbackRepo struct {
	createFunc func(ctx context.Context, f *domain.Feedback) error
	listFunc   func(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Feedback, error)
	deleteFunc func(ctx context.Context, restaurantID, id uuid.UUID) error
}

func (m *mockFeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	return m.createFunc(ctx, f)
}

func (m *mockFeedbackRepo) List(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]*domain.Feedback, error) {
	return m.listFunc(ctx, restaurantID, limit, offset)
}

func (m *mockFeedbackRepo) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return m.deleteFunc(ctx, restaurantID, id)
}

// ---------------------------------------------------------------------------
// Mock SettingsRepository
// ---------------------------------------------------------------------------

type mockSettingsRepo struct {
	getFunc          func(ctx context.Context, restaurantID uuid.UUID) (*domain.RestaurantSettings, error)
	saveFunc         func(ctx context.Context, s *domain.RestaurantSettings) error
	getBrandingFunc  func(ctx context.Context, restaurantID uuid.UUID) (*domain.RestaurantBranding, error)
	saveBrandingFunc func(ctx context.Context, b *domain.RestaurantBranding) error
}

func (m *mockSettingsRepo) Get(ctx context.Context, restaurantID uuid.UUID) (*domain.RestaurantSettings, error) {
	if m.getFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.getFunc(ctx, restaurantID)
}

func (m *mockSettingsRepo) Save(ctx context.Context, s *domain.RestaurantSettings) error {
	return m.saveFunc(ctx, s)
}

func (m *mockSettingsRepo) GetBranding(ctx context.Context, restaurantID uuid.UUID) (*domain.RestaurantBranding, error) {
	if m.getBrandingFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.getBrandingFunc(ctx, restaurantID)
}

func (m *mockSettingsRepo) SaveBranding(ctx context.Context, b *domain.RestaurantBranding) error {
	return m.saveBrandingFunc(ctx, b)
}

// ---------------------------------------------------------------------------
// Mock DashboardRepository
// ---------------------------------------------------------------------------

type mockDashboardRepo struct {
	statsFunc func(ctx context.Context, restaurantID uuid.UUID) (*domain.DashboardStats, error)
}

func (m *mockDashboardRepo) Stats(ctx context.Context, restaurantID uuid.UUID) (*domain.DashboardStats, error) {
	return m.statsFunc(ctx, restaurantID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, restaurantID uuid.UUID, email, password, name string) (*domain.User, error)
	loginFunc        func(ctx context.Context, restaurantID uuid.UUID, email, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
	getUserFunc      func(ctx context.Context, restaurantID, userID uuid.UUID) (*domain.User, error)
	hashPasswordFunc func(password string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, restaurantID uuid.UUID, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, restaurantID, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, restaurantID uuid.UUID, email, password string) (string, string, error) {
	return m.loginFunc(ctx, restaurantID, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GetUser(ctx context.Context, restaurantID, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, restaurantID, userID)
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.hashPasswordFunc == nil {
		return "hashed:" + password, nil
	}
	return m.hashPasswordFunc(password)
}

// ---------------------------------------------------------------------------
// Mock Publisher, ObjectStorage, DNSProvider, Mailer
// ---------------------------------------------------------------------------

type mockPublisher struct {
	published []publishedEvent
}

type publishedEvent struct {
	channel string
	payload []byte
}

func (m *mockPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	m.published = append(m.published, publishedEvent{channel: channel, payload: payload})
	return nil
}

type mockObjectStorage struct {
	uploadFunc func(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	deleted    []string
	deleteErr  error
	baseURL    string
}

func (m *mockObjectStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if m.uploadFunc == nil {
		return m.baseURL + key, nil
	}
	return m.uploadFunc(ctx, key, body, contentType)
}

func (m *mockObjectStorage) Delete(_ context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockObjectStorage) KeyFromURL(url string) string {
	if len(url) > len(m.baseURL) && url[:len(m.baseURL)] == m.baseURL {
		return url[len(m.baseURL):]
	}
	return ""
}

type mockDNSProvider struct {
	createFunc func(ctx context.Context, slug string) (string, error)
}

func (m *mockDNSProvider) CreateSubdomain(ctx context.Context, slug string) (string, error) {
	return m.createFunc(ctx, slug)
}

type mockMailer struct {
	sent []mailer.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
