package employee

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubJobRepo struct {
	jobs   map[int64]Job
	nextID int64
}

func NewStubJobRepo() *StubJobRepo {
	return &StubJobRepo{jobs: make(map[int64]Job), nextID: 1}
}

func (r *StubJobRepo) Cleanup() {
	r.jobs = make(map[int64]Job)
	r.nextID = 1
}

func (r *StubJobRepo) Store(_ context.Context, job Job) (int64, error) {
	job.ID = r.nextID
	r.nextID++
	r.jobs[job.ID] = job
	return job.ID, nil
}

func (r *StubJobRepo) FindByID(_ context.Context, id int64) (Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, apperr.NotFoundf("Job not found with ID: %d", id)
	}
	return job, nil
}

func (r *StubJobRepo) FindAll(_ context.Context, page rest.PageRequest) ([]Job, error) {
	jobs := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (r *StubJobRepo) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Job, error) {
	all, _ := r.FindAll(ctx, page)
	needle := strings.ToLower(keyword)
	matches := make([]Job, 0)
	for _, job := range all {
		if strings.Contains(strings.ToLower(job.DesignationAr), needle) ||
			strings.Contains(strings.ToLower(job.DesignationEn), needle) ||
			strings.Contains(strings.ToLower(job.DesignationFr), needle) {
			matches = append(matches, job)
		}
	}
	return matches, nil
}

func (r *StubJobRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.jobs)), nil
}

func (r *StubJobRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.jobs[id]
	return ok, nil
}

func (r *StubJobRepo) Update(_ context.Context, job Job) (bool, error) {
	if _, ok := r.jobs[job.ID]; !ok {
		return false, nil
	}
	r.jobs[job.ID] = job
	return true, nil
}

func (r *StubJobRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.jobs[id]; !ok {
		return false, nil
	}
	delete(r.jobs, id)
	return true, nil
}

type StubRepo struct {
	employees map[int64]Employee
	nextID    int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{employees: make(map[int64]Employee), nextID: 1}
}

func (r *StubRepo) Cleanup() {
	r.employees = make(map[int64]Employee)
	r.nextID = 1
}

func (r *StubRepo) Store(_ context.Context, employee Employee) (int64, error) {
	for _, existing := range r.employees {
		if existing.RegistrationNumber == employee.RegistrationNumber || existing.PersonID == employee.PersonID {
			return 0, apperr.Conflictf("an employee already exists with registration number %q or the same person",
				employee.RegistrationNumber)
		}
	}
	employee.ID = r.nextID
	r.nextID++
	r.employees[employee.ID] = employee
	return employee.ID, nil
}

func (r *StubRepo) FindByID(_ context.Context, id int64) (Employee, error) {
	employee, ok := r.employees[id]
	if !ok {
		return Employee{}, apperr.NotFoundf("Employee not found with ID: %d", id)
	}
	return employee, nil
}

func (r *StubRepo) FindByRegistrationNumber(_ context.Context, number string) (Employee, error) {
	for _, employee := range r.sorted() {
		if employee.RegistrationNumber == number {
			return employee, nil
		}
	}
	return Employee{}, apperr.NotFoundf("Employee not found with registration number: %s", number)
}

func (r *StubRepo) FindAll(_ context.Context, page rest.PageRequest) ([]Employee, error) {
	return r.sorted(), nil
}

func (r *StubRepo) FindByStructure(_ context.Context, structureID int64) ([]Employee, error) {
	matches := make([]Employee, 0)
	for _, employee := range r.sorted() {
		if employee.StructureID == structureID {
			matches = append(matches, employee)
		}
	}
	return matches, nil
}

func (r *StubRepo) FindByJob(_ context.Context, jobID int64) ([]Employee, error) {
	matches := make([]Employee, 0)
	for _, employee := range r.sorted() {
		if employee.JobID == jobID {
			matches = append(matches, employee)
		}
	}
	return matches, nil
}

func (r *StubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func (r *StubRepo) CountByStructure(_ context.Context, structureID int64) (int64, error) {
	var count int64
	for _, employee := range r.employees {
		if employee.StructureID == structureID {
			count++
		}
	}
	return count, nil
}

func (r *StubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.employees[id]
	return ok, nil
}

func (r *StubRepo) ExistsByPerson(_ context.Context, personID int64, excludeID int64) (bool, error) {
	for _, employee := range r.employees {
		if employee.PersonID == personID && employee.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Update(_ context.Context, employee Employee) (bool, error) {
	if _, ok := r.employees[employee.ID]; !ok {
		return false, nil
	}
	r.employees[employee.ID] = employee
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.employees[id]; !ok {
		return false, nil
	}
	delete(r.employees, id)
	return true, nil
}

func (r *StubRepo) sorted() []Employee {
	employees := make([]Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		employees = append(employees, employee)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].RegistrationNumber < employees[j].RegistrationNumber
	})
	return employees
}
