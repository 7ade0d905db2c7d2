package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/dbx"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/labels"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/projects"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/growthroad/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// expectTx registers the transaction bracket WithTx will produce.
func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// fakeRepoManager vends the same in-memory repositories regardless of the
// DBTX handle; transaction semantics are exercised separately in dbx tests.
type fakeRepoManager struct {
	users    users.Repository
	labels   labels.Repository
	projects projects.Repository
	tasks    tasks.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Labels(dbx.DBTX) labels.Repository            { return m.labels }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository        { return m.projects }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository              { return m.tasks }

// --- in-memory users ---

type memUserRepo struct {
	mu   sync.Mutex
	rows map[string]*models.User // keyed by id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: map[string]*models.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == user.Email {
			return common.ErrEmailExists
		}
	}
	user.CreatedAt = time.Now().UTC()
	cp := *user
	r.rows[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

// --- in-memory projects ---

type memProjectRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{rows: map[string]*models.Project{}}
}

func (r *memProjectRepo) put(p models.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = &p
}

func (r *memProjectRepo) Create(_ context.Context, p *models.Project) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.put(*p)
	return nil
}

func (r *memProjectRepo) List(_ context.Context, userID string) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Project{}
	for _, p := range r.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memProjectRepo) Get(_ context.Context, id, userID string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.rows[id]; ok && p.UserID == userID {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memProjectRepo) GetForUpdate(ctx context.Context, id, userID string) (*models.Project, error) {
	return r.Get(ctx, id, userID)
}

func (r *memProjectRepo) Update(_ context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.rows[p.ID]; ok && cur.UserID == p.UserID {
		cp := *p
		r.rows[p.ID] = &cp
		return nil
	}
	return common.ErrNotFound
}

func (r *memProjectRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.rows[id]; ok && p.UserID == userID {
		delete(r.rows, id)
		return nil
	}
	return common.ErrNotFound
}

// --- in-memory tasks ---

type memTaskRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Task
	seq  int // preserves insertion order for created_at tie-breaks
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{rows: map[string]*models.Task{}}
}

func (r *memTaskRepo) put(t models.Task) {
	r.seq++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC().Add(time.Duration(r.seq) * time.Microsecond)
	}
	r.rows[t.ID] = &t
}

// snapshot returns a copy of all rows for before/after comparisons.
func (r *memTaskRepo) snapshot() map[string]models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]models.Task{}
	for id, t := range r.rows {
		out[id] = *t
	}
	return out
}

func (r *memTaskRepo) Create(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	r.put(*t)
	return nil
}

func (r *memTaskRepo) List(_ context.Context, userID string) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Task{}
	for _, t := range r.rows {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memTaskRepo) Get(_ context.Context, id, userID string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.rows[id]; ok && t.UserID == userID {
		cp := *t
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memTaskRepo) GetAny(_ context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.rows[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memTaskRepo) Update(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.rows[t.ID]; ok && cur.UserID == t.UserID {
		cp := *t
		cp.CreatedAt = cur.CreatedAt
		r.rows[t.ID] = &cp
		return nil
	}
	return common.ErrNotFound
}

func (r *memTaskRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.rows[id]; ok && t.UserID == userID {
		delete(r.rows, id)
		return nil
	}
	return common.ErrNotFound
}

func (r *memTaskRepo) Upsert(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.rows[t.ID]; ok {
		cp := *t
		cp.CreatedAt = cur.CreatedAt
		r.rows[t.ID] = &cp
		return nil
	}
	r.put(*t)
	return nil
}

func (r *memTaskRepo) ListByProject(_ context.Context, projectID, userID string) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Task{}
	for _, t := range r.rows {
		if t.UserID == userID && t.ProjectID != nil && *t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memTaskRepo) DeleteByProjectExcept(_ context.Context, projectID, userID string, keep []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := map[string]struct{}{}
	for _, id := range keep {
		kept[id] = struct{}{}
	}
	for id, t := range r.rows {
		if t.UserID != userID || t.ProjectID == nil || *t.ProjectID != projectID {
			continue
		}
		if _, ok := kept[id]; !ok {
			delete(r.rows, id)
		}
	}
	return nil
}

// --- in-memory labels ---

type memLabelRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Label

	// references simulate projects/tasks pointing at a label.
	referenced map[string]bool
}

func newMemLabelRepo() *memLabelRepo {
	return &memLabelRepo{rows: map[string]*models.Label{}, referenced: map[string]bool{}}
}

func (r *memLabelRepo) Create(_ context.Context, l *models.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.rows {
		if cur.UserID == l.UserID && cur.Name == l.Name {
			return common.ErrDuplicateLabel
		}
	}
	l.CreatedAt = time.Now().UTC()
	cp := *l
	r.rows[l.ID] = &cp
	return nil
}

func (r *memLabelRepo) List(_ context.Context, userID string) ([]models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Label{}
	for _, l := range r.rows {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memLabelRepo) Get(_ context.Context, id, userID string) (*models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.rows[id]; ok && l.UserID == userID {
		cp := *l
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memLabelRepo) Update(_ context.Context, l *models.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.rows[l.ID]; ok && cur.UserID == l.UserID {
		cp := *l
		cp.CreatedAt = cur.CreatedAt
		r.rows[l.ID] = &cp
		return nil
	}
	return common.ErrNotFound
}

func (r *memLabelRepo) DeleteIfUnused(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok || l.UserID != userID {
		return common.ErrNotFound
	}
	if r.referenced[id] {
		return common.ErrLabelInUse
	}
	delete(r.rows, id)
	return nil
}
