package services

import (
	"context"
	"fmt"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/app/repositories"
)

// In-memory repository fakes. They mimic the store contract the pgx
// repositories implement: GetByID misses surface repositories.ErrNotFound,
// Create hands out sequential ids, aggregate loads reflect what the owning
// side last persisted.

type fakeStudentRepo struct {
	students  map[int64]*models.Student
	nextID    int64
	updateErr error
	updates   int
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]*models.Student{}, nextID: 1}
}

func (f *fakeStudentRepo) add(student *models.Student) *models.Student {
	student.ID = f.nextID
	f.nextID++
	f.students[student.ID] = student
	return student
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return student, nil
}

func (f *fakeStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	all := []*models.Student{}
	for _, s := range f.students {
		all = append(all, s)
	}
	return all, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) (int64, error) {
	id := f.nextID
	f.nextID++
	f.students[id] = student
	return id, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.students[student.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.students[student.ID] = student
	f.updates++
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeTeacherRepo struct {
	teachers map[int64]*models.Teacher
	nextID   int64
	updates  int
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: map[int64]*models.Teacher{}, nextID: 1}
}

func (f *fakeTeacherRepo) add(teacher *models.Teacher) *models.Teacher {
	teacher.ID = f.nextID
	f.nextID++
	f.teachers[teacher.ID] = teacher
	return teacher
}

func (f *fakeTeacherRepo) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := f.teachers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return teacher, nil
}

func (f *fakeTeacherRepo) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	all := []*models.Teacher{}
	for _, t := range f.teachers {
		all = append(all, t)
	}
	return all, nil
}

func (f *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) (int64, error) {
	id := f.nextID
	f.nextID++
	f.teachers[id] = teacher
	return id, nil
}

func (f *fakeTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if _, ok := f.teachers[teacher.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.teachers[teacher.ID] = teacher
	f.updates++
	return nil
}

func (f *fakeTeacherRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.teachers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.teachers, id)
	return nil
}

type fakeCourseRepo struct {
	courses   map[int64]*models.Course
	nextID    int64
	updateErr error
	updates   int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.Course{}, nextID: 1}
}

func (f *fakeCourseRepo) add(course *models.Course) *models.Course {
	course.ID = f.nextID
	f.nextID++
	f.courses[course.ID] = course
	return course
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return course, nil
}

func (f *fakeCourseRepo) GetAll(ctx context.Context) ([]*models.Course, error) {
	all := []*models.Course{}
	for _, c := range f.courses {
		all = append(all, c)
	}
	return all, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) (int64, error) {
	id := f.nextID
	f.nextID++
	f.courses[id] = course
	return id, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.courses[course.ID] = course
	f.updates++
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: map[int64]*models.Enrollment{}, nextID: 1}
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	all := []*models.Enrollment{}
	for _, e := range f.enrollments {
		all = append(all, e)
	}
	return all, nil
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	for _, e := range f.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return 0, repositories.ErrEnrollmentExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *enrollment
	stored.ID = id
	f.enrollments[id] = &stored
	return id, nil
}

func (f *fakeEnrollmentRepo) Update(ctx context.Context, enrollment *models.Enrollment) error {
	if _, ok := f.enrollments[enrollment.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.enrollments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentRepo struct {
	payments  map[int64]*models.Payment
	nextID    int64
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[int64]*models.Payment{}, nextID: 1}
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return payment, nil
}

func (f *fakePaymentRepo) GetAll(ctx context.Context) ([]*models.Payment, error) {
	all := []*models.Payment{}
	for _, p := range f.payments {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	stored := *payment
	stored.ID = id
	f.payments[id] = &stored
	return id, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	if _, ok := f.payments[payment.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.payments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

// fakeTxManager executes the function directly; writes in the fakes apply
// immediately so error propagation is what gets exercised here.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// registrarFixture bundles the fakes behind a ready-to-use service.
type registrarFixture struct {
	students    *fakeStudentRepo
	teachers    *fakeTeacherRepo
	courses     *fakeCourseRepo
	enrollments *fakeEnrollmentRepo
	payments    *fakePaymentRepo
	tx          *fakeTxManager
	service     *RegistrarService
}

func newRegistrarFixture() (*registrarFixture, error) {
	f := &registrarFixture{
		students:    newFakeStudentRepo(),
		teachers:    newFakeTeacherRepo(),
		courses:     newFakeCourseRepo(),
		enrollments: newFakeEnrollmentRepo(),
		payments:    newFakePaymentRepo(),
		tx:          &fakeTxManager{},
	}

	service, err := NewRegistrarService(f.students, f.teachers, f.courses, f.enrollments, f.payments, f.tx)
	if err != nil {
		return nil, fmt.Errorf("building registrar fixture: %w", err)
	}
	f.service = service
	return f, nil
}
