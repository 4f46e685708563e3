package app

import (
	"database/sql"

	"github.com/milplan/milplan/internal/config"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/pkg/budget_modification"
	"github.com/milplan/milplan/pkg/domain"
	"github.com/milplan/milplan/pkg/employee"
	"github.com/milplan/milplan/pkg/geo"
	"github.com/milplan/milplan/pkg/item_distribution"
	"github.com/milplan/milplan/pkg/item_status"
	"github.com/milplan/milplan/pkg/military"
	"github.com/milplan/milplan/pkg/person"
	"github.com/milplan/milplan/pkg/planned_item"
	"github.com/milplan/milplan/pkg/rubric"
	"github.com/milplan/milplan/pkg/structure"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Metrics *metrics.Metrics

	DomainRepo    domain.Repo
	DomainService domain.Service
	DomainHandler *domain.Handler

	RubricRepo    rubric.Repo
	RubricService rubric.Service
	RubricHandler *rubric.Handler

	ItemStatusRepo    item_status.Repo
	ItemStatusService item_status.Service
	ItemStatusHandler *item_status.Handler

	StructureTypeRepo    structure.TypeRepo
	StructureTypeService structure.TypeService
	StructureTypeHandler *structure.TypeHandler
	StructureRepo        structure.Repo
	StructureService     structure.Service
	StructureHandler     *structure.Handler

	PlannedItemRepo    planned_item.Repo
	PlannedItemService planned_item.Service
	PlannedItemHandler *planned_item.Handler

	ItemDistributionRepo    item_distribution.Repo
	ItemDistributionService item_distribution.Service
	ItemDistributionHandler *item_distribution.Handler

	BudgetModificationRepo    budget_modification.Repo
	BudgetModificationService budget_modification.Service
	BudgetModificationHandler *budget_modification.Handler

	MilitaryCategoryRepo    military.CategoryRepo
	MilitaryCategoryService military.CategoryService
	MilitaryCategoryHandler *military.CategoryHandler
	MilitaryRankRepo        military.RankRepo
	MilitaryRankService     military.RankService
	MilitaryRankHandler     *military.RankHandler

	CountryRepo     geo.CountryRepo
	CountryService  geo.CountryService
	CountryHandler  *geo.CountryHandler
	StateRepo       geo.StateRepo
	StateService    geo.StateService
	StateHandler    *geo.StateHandler
	LocalityRepo    geo.LocalityRepo
	LocalityService geo.LocalityService
	LocalityHandler *geo.LocalityHandler

	PersonRepo    person.Repo
	PersonService person.Service
	PersonHandler *person.Handler

	JobRepo         employee.JobRepo
	JobService      employee.JobService
	JobHandler      *employee.JobHandler
	EmployeeRepo    employee.Repo
	EmployeeService employee.Service
	EmployeeHandler *employee.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Metrics = metrics.New()

	deps.DomainRepo = domain.NewRepo(db)
	deps.DomainService = domain.NewService(deps.DomainRepo, deps.Metrics)
	deps.DomainHandler = domain.NewHandler(deps.DomainService)

	deps.RubricRepo = rubric.NewRepo(db)
	deps.RubricService = rubric.NewService(deps.RubricRepo, deps.DomainRepo, deps.Metrics)
	deps.RubricHandler = rubric.NewHandler(deps.RubricService)

	deps.ItemStatusRepo = item_status.NewRepo(db)
	deps.ItemStatusService = item_status.NewService(deps.ItemStatusRepo, deps.Metrics)
	deps.ItemStatusHandler = item_status.NewHandler(deps.ItemStatusService)

	deps.StructureTypeRepo = structure.NewTypeRepo(db)
	deps.StructureTypeService = structure.NewTypeService(deps.StructureTypeRepo)
	deps.StructureTypeHandler = structure.NewTypeHandler(deps.StructureTypeService)
	deps.StructureRepo = structure.NewRepo(db)
	deps.StructureService = structure.NewService(deps.StructureRepo, deps.StructureTypeRepo, deps.Metrics)
	deps.StructureHandler = structure.NewHandler(deps.StructureService)

	deps.PlannedItemRepo = planned_item.NewRepo(db)
	deps.PlannedItemService = planned_item.NewService(deps.PlannedItemRepo, deps.RubricRepo, deps.ItemStatusRepo, deps.Metrics)
	deps.PlannedItemHandler = planned_item.NewHandler(deps.PlannedItemService)

	deps.ItemDistributionRepo = item_distribution.NewRepo(db)
	deps.ItemDistributionService = item_distribution.NewService(deps.ItemDistributionRepo, deps.PlannedItemRepo, deps.StructureRepo, deps.Metrics)
	deps.ItemDistributionHandler = item_distribution.NewHandler(deps.ItemDistributionService)

	deps.BudgetModificationRepo = budget_modification.NewRepo(db)
	deps.BudgetModificationService = budget_modification.NewService(deps.BudgetModificationRepo, deps.PlannedItemRepo, deps.Metrics)
	deps.BudgetModificationHandler = budget_modification.NewHandler(deps.BudgetModificationService)

	deps.MilitaryCategoryRepo = military.NewCategoryRepo(db)
	deps.MilitaryCategoryService = military.NewCategoryService(deps.MilitaryCategoryRepo, deps.Metrics)
	deps.MilitaryCategoryHandler = military.NewCategoryHandler(deps.MilitaryCategoryService)
	deps.MilitaryRankRepo = military.NewRankRepo(db)
	deps.MilitaryRankService = military.NewRankService(deps.MilitaryRankRepo, deps.MilitaryCategoryRepo, deps.Metrics)
	deps.MilitaryRankHandler = military.NewRankHandler(deps.MilitaryRankService)

	deps.CountryRepo = geo.NewCountryRepo(db)
	deps.CountryService = geo.NewCountryService(deps.CountryRepo, deps.Metrics)
	deps.CountryHandler = geo.NewCountryHandler(deps.CountryService)
	deps.StateRepo = geo.NewStateRepo(db)
	deps.StateService = geo.NewStateService(deps.StateRepo, deps.CountryRepo, deps.Metrics)
	deps.StateHandler = geo.NewStateHandler(deps.StateService)
	deps.LocalityRepo = geo.NewLocalityRepo(db)
	deps.LocalityService = geo.NewLocalityService(deps.LocalityRepo, deps.StateRepo, deps.Metrics)
	deps.LocalityHandler = geo.NewLocalityHandler(deps.LocalityService)

	deps.PersonRepo = person.NewRepo(db)
	deps.PersonService = person.NewService(deps.PersonRepo, deps.LocalityRepo, deps.CountryRepo, deps.Metrics)
	deps.PersonHandler = person.NewHandler(deps.PersonService)

	deps.JobRepo = employee.NewJobRepo(db)
	deps.JobService = employee.NewJobService(deps.JobRepo, deps.Metrics)
	deps.JobHandler = employee.NewJobHandler(deps.JobService)
	deps.EmployeeRepo = employee.NewRepo(db)
	deps.EmployeeService = employee.NewService(
		deps.EmployeeRepo,
		deps.JobRepo,
		deps.PersonRepo,
		deps.StructureRepo,
		deps.MilitaryRankRepo,
		deps.Metrics,
	)
	deps.EmployeeHandler = employee.NewHandler(deps.EmployeeService)

	return deps
}
