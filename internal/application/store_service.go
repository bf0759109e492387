package application

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abdidvp/storekraft/internal/domain"
)

// StoreService owns the session state: the catalog and at most one open
// order. Every stock-affecting operation re-persists the full catalog
// before returning. Calls are serialized, so the service can back
// transports that dispatch from several goroutines.
//
// A failed save is reported as a PersistenceError but never rolls back the
// in-memory change; the next successful save writes a complete snapshot.
type StoreService struct {
	catalogRepo domain.CatalogRepository
	history     domain.OrderHistory
	logger      *zap.Logger
	now         func() time.Time

	mu      sync.Mutex
	catalog *domain.Catalog
	current *domain.Order
}

// Option configures a StoreService.
type Option func(*StoreService)

// WithClock replaces time.Now as the source of order timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *StoreService) { s.now = now }
}

func NewStoreService(
	catalogRepo domain.CatalogRepository,
	history domain.OrderHistory,
	logger *zap.Logger,
	opts ...Option,
) *StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StoreService{
		catalogRepo: catalogRepo,
		history:     history,
		logger:      logger,
		now:         time.Now,
		catalog:     domain.NewCatalog(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BootstrapReport describes how the catalog was obtained.
type BootstrapReport struct {
	Existed bool                   `json:"existed"`
	Loaded  int                    `json:"loaded"`
	Skipped []domain.SkippedRecord `json:"skipped,omitempty"`
	Seeded  bool                   `json:"seeded"`
}

// Bootstrap loads the catalog from storage. When storage holds no usable
// products, seed becomes the catalog and is persisted immediately.
func (s *StoreService) Bootstrap(seed []*domain.Product) (BootstrapReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(seed)
}

// ReloadCatalog replaces the whole catalog from storage. It is refused
// while an order is open, since open lines reference the current products.
func (s *StoreService) ReloadCatalog(seed []*domain.Product) (BootstrapReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureNoOpenOrder(); err != nil {
		return BootstrapReport{}, err
	}
	return s.load(seed)
}

func (s *StoreService) load(seed []*domain.Product) (BootstrapReport, error) {
	report := BootstrapReport{Existed: s.catalogRepo.Exists()}

	var products []*domain.Product
	snap, err := s.catalogRepo.Load()
	if err != nil {
		// An unreadable snapshot is treated like a missing one.
		s.logger.Error("reading catalog failed, falling back to seed", zap.Error(err))
	} else {
		products = snap.Products
		report.Skipped = snap.Skipped
		for _, sk := range snap.Skipped {
			s.logger.Warn("skipping malformed catalog record",
				zap.Int("index", sk.Index), zap.String("reason", sk.Reason))
		}
	}

	if len(products) > 0 {
		report.Loaded = len(products)
		s.catalog.Replace(products)
		s.logger.Info("catalog loaded", zap.Int("products", len(products)), zap.Int("skipped", len(report.Skipped)))
		return report, nil
	}

	report.Seeded = true
	report.Loaded = len(seed)
	s.catalog.Replace(seed)
	s.logger.Info("catalog seeded", zap.Int("products", len(seed)), zap.Bool("existed", report.Existed))
	return report, s.saveCatalog()
}

// Catalog returns detached copies of the products in catalog order.
func (s *StoreService) Catalog() []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.catalog.Products()
	out := make([]*domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// StartOrder opens a new order. It fails with OrderAlreadyOpen, carrying
// the open order's customer, while another order is OPEN.
func (s *StoreService) StartOrder(customerName string) (domain.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureNoOpenOrder(); err != nil {
		return domain.CartView{}, err
	}

	order, err := domain.NewOrder(customerName, s.now())
	if err != nil {
		return domain.CartView{}, err
	}
	s.current = order
	s.logger.Info("order started", zap.String("customer", order.CustomerName))
	return order.View(), nil
}

// Cart returns the current order's cart.
func (s *StoreService) Cart() (domain.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.CartView{}, domain.ErrNoOpenOrder
	}
	return s.current.View(), nil
}

// AddItem adds quantity units of the product at the 0-based productIndex.
func (s *StoreService) AddItem(productIndex, quantity int) (domain.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.CartView{}, domain.ErrNoOpenOrder
	}
	product, err := s.catalog.Get(productIndex)
	if err != nil {
		return domain.CartView{}, err
	}
	if err := s.current.AddItem(product, quantity); err != nil {
		return domain.CartView{}, err
	}

	s.logger.Info("item added",
		zap.String("customer", s.current.CustomerName),
		zap.String("product", product.Name),
		zap.Int("quantity", quantity),
		zap.Int("stock_left", product.Stock()),
	)
	return s.current.View(), s.saveCatalog()
}

// RemoveItem removes units from the cart line at the 0-based cartIndex. A
// nil quantity removes the whole line.
func (s *StoreService) RemoveItem(cartIndex int, quantity *int) (domain.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.CartView{}, domain.ErrNoOpenOrder
	}
	if err := s.current.RemoveItem(cartIndex, quantity); err != nil {
		return domain.CartView{}, err
	}

	fields := []zap.Field{zap.String("customer", s.current.CustomerName), zap.Int("line", cartIndex+1)}
	if quantity != nil {
		fields = append(fields, zap.Int("quantity", *quantity))
	}
	s.logger.Info("item removed", fields...)
	return s.current.View(), s.saveCatalog()
}

// CancelOrder restocks the open order, marks it CANCELED and detaches it.
func (s *StoreService) CancelOrder() (domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.OrderRecord{}, domain.ErrNoOpenOrder
	}
	if err := s.current.Cancel(s.now()); err != nil {
		return domain.OrderRecord{}, err
	}

	record := s.current.ToRecord()
	s.current = nil
	s.logger.Info("order canceled", zap.String("customer", record.CustomerName))
	return record, s.saveCatalog()
}

// Checkout marks the open order PAID, appends it to the history, persists
// the catalog and detaches the order. The order stays PAID and detached
// even when a write fails.
func (s *StoreService) Checkout() (domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.OrderRecord{}, domain.ErrNoOpenOrder
	}
	if err := s.current.Finish(s.now()); err != nil {
		return domain.OrderRecord{}, err
	}

	record := s.current.ToRecord()
	s.current = nil
	s.logger.Info("order paid",
		zap.String("customer", record.CustomerName),
		zap.Int("lines", len(record.Items)),
		zap.Float64("total", record.Total),
	)

	if err := s.history.Append(record); err != nil {
		s.logger.Error("appending order history failed", zap.Error(err))
		saveErr := s.saveCatalog()
		if saveErr != nil {
			return record, saveErr
		}
		return record, domain.NewPersistenceError("appending order history", err)
	}
	return record, s.saveCatalog()
}

// History returns up to limit records, newest first. A limit <= 0 returns
// the whole history.
func (s *StoreService) History(limit int) ([]domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.history.Load()
	if err != nil {
		return nil, domain.NewPersistenceError("loading order history", err)
	}

	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]domain.OrderRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out, nil
}

func (s *StoreService) ensureNoOpenOrder() error {
	if s.current != nil && s.current.Status() == domain.StatusOpen {
		return &domain.Error{
			Code:         domain.CodeOrderAlreadyOpen,
			Message:      "there is already an open order for " + s.current.CustomerName,
			OpenCustomer: s.current.CustomerName,
		}
	}
	return nil
}

func (s *StoreService) saveCatalog() error {
	if err := s.catalogRepo.Save(s.catalog.Products()); err != nil {
		s.logger.Error("saving catalog failed", zap.Error(err))
		return domain.NewPersistenceError("saving catalog", err)
	}
	s.logger.Debug("catalog saved", zap.Int("products", s.catalog.Len()))
	return nil
}
