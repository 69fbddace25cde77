package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/repository"
)

type attendanceKey struct {
	studentID int
	date      string
}

// memoryStore is an in-memory stand-in for PostgreSQL that enforces the same
// unique keys: students.uid, class_days.date and attendance (student_id, date).
type memoryStore struct {
	mu sync.Mutex

	calls  int
	failOn map[string]error

	nextID     int
	students   map[int]*model.Student
	classDays  map[string]*model.ClassDay
	attendance map[attendanceKey]*model.AttendanceRecord
	users      []model.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		failOn:     map[string]error{},
		students:   map[int]*model.Student{},
		classDays:  map[string]*model.ClassDay{},
		attendance: map[attendanceKey]*model.AttendanceRecord{},
	}
}

// hit counts a storage call and returns the failure injected for op.
// Callers hold m.mu.
func (m *memoryStore) hit(op string) error {
	m.calls++
	return m.failOn[op]
}

func (m *memoryStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memoryStore) addStudents(names ...string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(names))
	for _, n := range names {
		id := len(m.students) + 1
		m.students[id] = &model.Student{ID: id, Name: n}
		ids = append(ids, id)
	}
	return ids
}

func (m *memoryStore) rowsOn(date model.Date) []model.AttendanceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AttendanceRecord
	for k, a := range m.attendance {
		if k.date == date.String() {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out
}

// ─── StudentStore ───────────────────────────────────────────────────

func (m *memoryStore) Create(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("student.create"); err != nil {
		return err
	}
	if s.UID != nil {
		for _, existing := range m.students {
			if existing.UID != nil && *existing.UID == *s.UID {
				return repository.ErrConstraintViolation
			}
		}
	}
	s.ID = len(m.students) + 1
	s.CreatedAt = time.Now()
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *memoryStore) List(_ context.Context) ([]model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("student.list"); err != nil {
		return nil, err
	}
	var out []model.Student
	for _, s := range m.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) GetByID(_ context.Context, id int) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("student.get"); err != nil {
		return nil, err
	}
	s, ok := m.students[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

// ─── AttendanceStore ────────────────────────────────────────────────

type memoryAttendance struct{ *memoryStore }

func (m memoryAttendance) FindByStudentAndDate(_ context.Context, studentID int, date model.Date) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("attendance.find"); err != nil {
		return nil, err
	}
	a, ok := m.attendance[attendanceKey{studentID, date.String()}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m memoryAttendance) Insert(_ context.Context, a *model.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("attendance.insert"); err != nil {
		return err
	}
	if _, ok := m.students[a.StudentID]; !ok {
		return repository.ErrReferenceMissing
	}
	key := attendanceKey{a.StudentID, a.Date.String()}
	if _, ok := m.attendance[key]; ok {
		return repository.ErrConstraintViolation
	}
	a.ID = m.id()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.attendance[key] = &cp
	return nil
}

func (m memoryAttendance) PromoteToPresent(_ context.Context, studentID int, date model.Date) (*model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("attendance.promote"); err != nil {
		return nil, err
	}
	a, ok := m.attendance[attendanceKey{studentID, date.String()}]
	if !ok || a.Status != model.AttendanceAbsent {
		return nil, pgx.ErrNoRows
	}
	a.Status = model.AttendancePresent
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (m memoryAttendance) List(_ context.Context) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("attendance.list"); err != nil {
		return nil, err
	}
	var out []model.AttendanceRecord
	for _, a := range m.attendance {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Time().Before(out[j].Date.Time())
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, nil
}

// ─── ClassDayStore ──────────────────────────────────────────────────

func (m *memoryStore) GetByDate(_ context.Context, date model.Date) (*model.ClassDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("classday.get"); err != nil {
		return nil, err
	}
	cd, ok := m.classDays[date.String()]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *cd
	return &cp, nil
}

// CreateWithSeed applies everything or nothing, like the transaction it stands in for.
func (m *memoryStore) CreateWithSeed(_ context.Context, cd *model.ClassDay, limit *int) ([]model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("classday.create"); err != nil {
		return nil, err
	}

	if _, ok := m.classDays[cd.Date.String()]; ok {
		return nil, repository.ErrConstraintViolation
	}
	ids := make([]int, 0, len(m.students))
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if limit != nil {
		if len(ids) < *limit {
			return nil, repository.ErrRosterTooSmall
		}
		ids = ids[:*limit]
	}

	cd.ID = m.id()
	cd.CreatedAt = time.Now()
	cp := *cd
	m.classDays[cd.Date.String()] = &cp

	var seeded []model.AttendanceRecord
	for _, id := range ids {
		key := attendanceKey{id, cd.Date.String()}
		if _, ok := m.attendance[key]; ok {
			continue
		}
		a := &model.AttendanceRecord{ID: m.id(), StudentID: id, Date: cd.Date, Status: model.AttendanceAbsent}
		m.attendance[key] = a
		seeded = append(seeded, *a)
	}
	cd.Num = len(seeded)
	m.classDays[cd.Date.String()].Num = cd.Num
	return seeded, nil
}

// ─── UserStore ──────────────────────────────────────────────────────

func (m *memoryStore) ListByEmail(_ context.Context, email string) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hit("user.list"); err != nil {
		return nil, err
	}
	var out []model.User
	for _, u := range m.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

// ─── EventPublisher ─────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	events []model.AttendanceEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e model.AttendanceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) count(t model.AttendanceEventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
