package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

// memStore - хранилище в памяти вместо PostgreSQL. Все fake-репозитории работают с ним.
type memStore struct {
	mu            sync.Mutex
	equipments    []entities.Equipment
	loans         []entities.Loan
	history       []entities.EquipmentHistory
	notifications []entities.Notification
	users         []entities.User
}

type memSnapshot struct {
	equipments    []entities.Equipment
	loans         []entities.Loan
	history       []entities.EquipmentHistory
	notifications []entities.Notification
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	loans := make([]entities.Loan, len(s.loans))
	for i, l := range s.loans {
		l.Equipments = append([]string(nil), l.Equipments...)
		loans[i] = l
	}
	return memSnapshot{
		equipments:    append([]entities.Equipment(nil), s.equipments...),
		loans:         loans,
		history:       append([]entities.EquipmentHistory(nil), s.history...),
		notifications: append([]entities.Notification(nil), s.notifications...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipments = snap.equipments
	s.loans = snap.loans
	s.history = snap.history
	s.notifications = snap.notifications
}

// fakeTxManager откатывает изменения хранилища, если fn вернула ошибку.
type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

//============== EQUIPMENT ==============

type fakeEquipmentRepo struct{ store *memStore }

func (r *fakeEquipmentRepo) Create(_ context.Context, _ pgx.Tx, e *entities.Equipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.equipments {
		if existing.NumeroPatrimonio == e.NumeroPatrimonio {
			return apperrors.ErrConflict
		}
	}
	r.store.equipments = append(r.store.equipments, *e)
	return nil
}

func (r *fakeEquipmentRepo) find(match func(entities.Equipment) bool) (*entities.Equipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.equipments {
		if match(e) {
			found := e
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) FindByID(_ context.Context, _ pgx.Tx, id string) (*entities.Equipment, error) {
	return r.find(func(e entities.Equipment) bool { return e.ID == id })
}

func (r *fakeEquipmentRepo) FindByPatrimonio(_ context.Context, _ pgx.Tx, tag string, _ bool) (*entities.Equipment, error) {
	return r.find(func(e entities.Equipment) bool { return e.NumeroPatrimonio == tag })
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *fakeEquipmentRepo) List(_ context.Context, f entities.EquipmentFilter) ([]entities.Equipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.Equipment, 0)
	for _, e := range r.store.equipments {
		if f.Tipo != "" && e.TipoEquipamento != f.Tipo ||
			f.Departamento != "" && e.DepartamentoAtual != f.Departamento ||
			f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(e.NumeroPatrimonio, f.Search) && !containsFold(e.NumeroSerie, f.Search) &&
			!containsFold(e.Marca, f.Search) && !containsFold(e.Modelo, f.Search) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && uint64(len(out)) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) mutate(match func(*entities.Equipment) bool, apply func(*entities.Equipment)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.equipments {
		if match(&r.store.equipments[i]) {
			apply(&r.store.equipments[i])
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) Update(_ context.Context, _ pgx.Tx, e *entities.Equipment) error {
	return r.mutate(func(x *entities.Equipment) bool { return x.ID == e.ID }, func(x *entities.Equipment) { *x = *e })
}

func (r *fakeEquipmentRepo) UpdateStatus(_ context.Context, _ pgx.Tx, tag, status string) error {
	err := r.mutate(func(x *entities.Equipment) bool { return x.NumeroPatrimonio == tag }, func(x *entities.Equipment) {
		x.Status = status
	})
	if err == apperrors.ErrNotFound {
		return nil
	}
	return err
}

func (r *fakeEquipmentRepo) AttachTermo(_ context.Context, _ pgx.Tx, id, encoded string) error {
	return r.mutate(func(x *entities.Equipment) bool { return x.ID == id }, func(x *entities.Equipment) {
		x.TermoResponsabilidade.SetValid(encoded)
	})
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, _ pgx.Tx, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, e := range r.store.equipments {
		if e.ID == id {
			r.store.equipments = append(r.store.equipments[:i], r.store.equipments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

//============== LOANS ==============

type fakeLoanRepo struct{ store *memStore }

func (r *fakeLoanRepo) Create(_ context.Context, _ pgx.Tx, l *entities.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *l
	copied.Equipments = append([]string(nil), l.Equipments...)
	r.store.loans = append(r.store.loans, copied)
	return nil
}

func (r *fakeLoanRepo) FindByID(_ context.Context, _ pgx.Tx, id string, _ bool) (*entities.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, l := range r.store.loans {
		if l.ID == id {
			found := l
			found.Equipments = append([]string(nil), l.Equipments...)
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeLoanRepo) List(_ context.Context, f entities.LoanFilter) ([]entities.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.Loan, 0)
	for _, l := range r.store.loans {
		if f.Status != "" && l.StatusDevolucao != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(l.NomeSolicitante, f.Search) && !containsFold(l.DepartamentoSolicitante, f.Search) {
			continue
		}
		l.Equipments = append([]string(nil), l.Equipments...)
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLoanRepo) MarkOverdue(_ context.Context, _ pgx.Tx, ids []string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, id := range ids {
		for i := range r.store.loans {
			if r.store.loans[i].ID == id && r.store.loans[i].StatusDevolucao == constants.LoanStatusPending {
				r.store.loans[i].StatusDevolucao = constants.LoanStatusOverdue
				n++
			}
		}
	}
	return n, nil
}

func (r *fakeLoanRepo) MarkReturned(_ context.Context, _ pgx.Tx, id string, returnedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.loans {
		if r.store.loans[i].ID == id {
			r.store.loans[i].StatusDevolucao = constants.LoanStatusReturned
			r.store.loans[i].DataDevolucaoReal.SetValid(returnedAt)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

//============== HISTORY & NOTIFICATIONS ==============

type fakeHistoryRepo struct{ store *memStore }

func (r *fakeHistoryRepo) Create(_ context.Context, _ pgx.Tx, h *entities.EquipmentHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.history = append(r.store.history, *h)
	return nil
}

func (r *fakeHistoryRepo) FindByEquipmentID(_ context.Context, equipmentID string, limit uint64) ([]entities.EquipmentHistory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.EquipmentHistory, 0)
	for _, h := range r.store.history {
		if h.EquipmentID == equipmentID && uint64(len(out)) < limit {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct{ store *memStore }

func (r *fakeNotificationRepo) Create(_ context.Context, _ pgx.Tx, n *entities.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.notifications = append(r.store.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) FindByUserID(_ context.Context, userID string, limit uint64) ([]entities.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.Notification, 0)
	for _, n := range r.store.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.notifications {
		if r.store.notifications[i].ID == id && r.store.notifications[i].UserID == userID {
			r.store.notifications[i].Read = true
		}
	}
	return nil
}

//============== USERS & DASHBOARD ==============

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) find(match func(entities.User) bool) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) FindByRole(_ context.Context, _ pgx.Tx, role string, limit uint64) ([]entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entities.User, 0)
	for _, u := range r.store.users {
		if u.Role == role && uint64(len(out)) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *entities.User) error {
	if _, err := r.FindByUsername(context.Background(), u.Username); err == nil {
		return apperrors.ErrConflict
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users = append(r.store.users, *u)
	return nil
}

type fakeDashboardRepo struct{ store *memStore }

func (r *fakeDashboardRepo) CountEquipments(_ context.Context) (*entities.EquipmentCounts, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := &entities.EquipmentCounts{Total: int64(len(r.store.equipments))}
	for _, e := range r.store.equipments {
		switch e.Status {
		case constants.EquipmentStatusAvailable:
			c.Available++
		case constants.EquipmentStatusLoaned:
			c.Loaned++
		case constants.EquipmentStatusMaintenance:
			c.Maintenance++
		}
	}
	return c, nil
}

func (r *fakeDashboardRepo) CountLoans(_ context.Context) (*entities.LoanCounts, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := &entities.LoanCounts{}
	for _, l := range r.store.loans {
		switch l.StatusDevolucao {
		case constants.LoanStatusPending:
			c.Pending++
		case constants.LoanStatusOverdue:
			c.Overdue++
		}
	}
	return c, nil
}

//============== WIRING ==============

var (
	testAdmin = types.Actor{ID: "admin-1", Username: "dedianit", Role: constants.RoleAdmin}
	testStaff = types.Actor{ID: "staff-1", Username: "tecnico", Role: constants.RoleStaff}
)

type testEnv struct {
	store         *memStore
	clock         time.Time
	history       *EquipmentHistoryService
	notifications *NotificationService
	equipments    *EquipmentService
	loans         *LoanService
	dashboard     *DashboardService
	importer      *EquipmentImportService
	exporter      *ExportService
	auth          *AuthService
	cache         repositories.CacheRepositoryInterface
}

func newTestEnv() *testEnv {
	store := &memStore{
		users: []entities.User{
			{ID: testAdmin.ID, Username: testAdmin.Username, Role: constants.RoleAdmin},
			{ID: "admin-2", Username: "chefe", Role: constants.RoleAdmin},
			{ID: testStaff.ID, Username: testStaff.Username, Role: constants.RoleStaff},
		},
	}
	logger := zap.NewNop()
	env := &testEnv{store: store, clock: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	now := func() time.Time { return env.clock }

	tx := &fakeTxManager{store: store}
	equipmentRepo := &fakeEquipmentRepo{store: store}
	userRepo := &fakeUserRepo{store: store}

	env.history = NewEquipmentHistoryService(&fakeHistoryRepo{store: store}, logger)
	env.history.now = now
	env.notifications = NewNotificationService(&fakeNotificationRepo{store: store}, userRepo, logger)
	env.notifications.now = now
	env.equipments = NewEquipmentService(tx, equipmentRepo, env.history, logger)
	env.equipments.now = now
	env.loans = NewLoanService(tx, &fakeLoanRepo{store: store}, equipmentRepo, env.history, env.notifications, logger)
	env.loans.now = now
	env.dashboard = NewDashboardService(&fakeDashboardRepo{store: store}, logger)
	env.importer = NewEquipmentImportService(env.equipments, logger)
	env.exporter = NewExportService(env.equipments, env.loans, logger)

	env.cache = repositories.NewMemoryCacheRepository(time.Minute, time.Minute)
	env.auth = NewAuthService(userRepo, env.cache, service.NewJWTService("test-secret", time.Hour), logger,
		&config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute})
	return env
}

func actorCtx(actor types.Actor) context.Context {
	return utils.WithActor(context.Background(), actor)
}

func (env *testEnv) equipmentByTag(tag string) entities.Equipment {
	env.store.mu.Lock()
	defer env.store.mu.Unlock()
	for _, e := range env.store.equipments {
		if e.NumeroPatrimonio == tag {
			return e
		}
	}
	return entities.Equipment{}
}

func (env *testEnv) historyFor(equipmentID string) []entities.EquipmentHistory {
	env.store.mu.Lock()
	defer env.store.mu.Unlock()
	var out []entities.EquipmentHistory
	for _, h := range env.store.history {
		if h.EquipmentID == equipmentID {
			out = append(out, h)
		}
	}
	return out
}

func (env *testEnv) notificationsFor(userID string) []entities.Notification {
	env.store.mu.Lock()
	defer env.store.mu.Unlock()
	var out []entities.Notification
	for _, n := range env.store.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
