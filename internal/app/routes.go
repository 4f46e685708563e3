package app

import (
	"github.com/gorilla/mux"
	"github.com/milplan/milplan/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Domains
	r.HandleFunc("/api/domain", deps.DomainHandler.Create).Methods("POST")
	r.HandleFunc("/api/domain", deps.DomainHandler.List).Methods("GET")
	r.HandleFunc("/api/domain/search", deps.DomainHandler.Search).Methods("GET")
	r.HandleFunc("/api/domain/count/all", deps.DomainHandler.Count).Methods("GET")
	r.HandleFunc("/api/domain/category/{category}", deps.DomainHandler.ListByCategory).Methods("GET")
	r.HandleFunc("/api/domain/{id}", deps.DomainHandler.Get).Methods("GET")
	r.HandleFunc("/api/domain/{id}/exists", deps.DomainHandler.Exists).Methods("GET")
	r.HandleFunc("/api/domain/{id}", deps.DomainHandler.Update).Methods("PUT")
	r.HandleFunc("/api/domain/{id}", deps.DomainHandler.Delete).Methods("DELETE")

	// Rubrics
	r.HandleFunc("/api/rubric", deps.RubricHandler.Create).Methods("POST")
	r.HandleFunc("/api/rubric", deps.RubricHandler.List).Methods("GET")
	r.HandleFunc("/api/rubric/search", deps.RubricHandler.Search).Methods("GET")
	r.HandleFunc("/api/rubric/count/all", deps.RubricHandler.Count).Methods("GET")
	r.HandleFunc("/api/rubric/{id}", deps.RubricHandler.Get).Methods("GET")
	r.HandleFunc("/api/rubric/{id}/exists", deps.RubricHandler.Exists).Methods("GET")
	r.HandleFunc("/api/rubric/{id}", deps.RubricHandler.Update).Methods("PUT")
	r.HandleFunc("/api/rubric/{id}", deps.RubricHandler.Delete).Methods("DELETE")

	// Item statuses
	r.HandleFunc("/api/item-status", deps.ItemStatusHandler.Create).Methods("POST")
	r.HandleFunc("/api/item-status", deps.ItemStatusHandler.List).Methods("GET")
	r.HandleFunc("/api/item-status/search", deps.ItemStatusHandler.Search).Methods("GET")
	r.HandleFunc("/api/item-status/count/all", deps.ItemStatusHandler.Count).Methods("GET")
	r.HandleFunc("/api/item-status/category/{category}", deps.ItemStatusHandler.ListByCategory).Methods("GET")
	r.HandleFunc("/api/item-status/{id}", deps.ItemStatusHandler.Get).Methods("GET")
	r.HandleFunc("/api/item-status/{id}/exists", deps.ItemStatusHandler.Exists).Methods("GET")
	r.HandleFunc("/api/item-status/{id}", deps.ItemStatusHandler.Update).Methods("PUT")
	r.HandleFunc("/api/item-status/{id}", deps.ItemStatusHandler.Delete).Methods("DELETE")

	// Structure types
	r.HandleFunc("/api/structure-type", deps.StructureTypeHandler.Create).Methods("POST")
	r.HandleFunc("/api/structure-type", deps.StructureTypeHandler.List).Methods("GET")
	r.HandleFunc("/api/structure-type/search", deps.StructureTypeHandler.Search).Methods("GET")
	r.HandleFunc("/api/structure-type/count/all", deps.StructureTypeHandler.Count).Methods("GET")
	r.HandleFunc("/api/structure-type/{id}", deps.StructureTypeHandler.Get).Methods("GET")
	r.HandleFunc("/api/structure-type/{id}/exists", deps.StructureTypeHandler.Exists).Methods("GET")
	r.HandleFunc("/api/structure-type/{id}", deps.StructureTypeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/structure-type/{id}", deps.StructureTypeHandler.Delete).Methods("DELETE")

	// Structures
	r.HandleFunc("/api/structure", deps.StructureHandler.Create).Methods("POST")
	r.HandleFunc("/api/structure", deps.StructureHandler.List).Methods("GET")
	r.HandleFunc("/api/structure/roots", deps.StructureHandler.ListRoots).Methods("GET")
	r.HandleFunc("/api/structure/search", deps.StructureHandler.Search).Methods("GET")
	r.HandleFunc("/api/structure/count/all", deps.StructureHandler.Count).Methods("GET")
	r.HandleFunc("/api/structure/uid/{uid}", deps.StructureHandler.GetByUid).Methods("GET")
	r.HandleFunc("/api/structure/{id}", deps.StructureHandler.Get).Methods("GET")
	r.HandleFunc("/api/structure/{id}/exists", deps.StructureHandler.Exists).Methods("GET")
	r.HandleFunc("/api/structure/{id}/children", deps.StructureHandler.ListChildren).Methods("GET")
	r.HandleFunc("/api/structure/{id}/ancestors", deps.StructureHandler.ListAncestors).Methods("GET")
	r.HandleFunc("/api/structure/{id}/descendants", deps.StructureHandler.ListDescendants).Methods("GET")
	r.HandleFunc("/api/structure/{id}", deps.StructureHandler.Update).Methods("PUT")
	r.HandleFunc("/api/structure/{id}", deps.StructureHandler.Delete).Methods("DELETE")

	// Planned items
	r.HandleFunc("/api/planned-item", deps.PlannedItemHandler.Create).Methods("POST")
	r.HandleFunc("/api/planned-item", deps.PlannedItemHandler.List).Methods("GET")
	r.HandleFunc("/api/planned-item/search", deps.PlannedItemHandler.Search).Methods("GET")
	r.HandleFunc("/api/planned-item/count/all", deps.PlannedItemHandler.Count).Methods("GET")
	r.HandleFunc("/api/planned-item/priority/{priority}", deps.PlannedItemHandler.ListByPriority).Methods("GET")
	r.HandleFunc("/api/planned-item/{id}", deps.PlannedItemHandler.Get).Methods("GET")
	r.HandleFunc("/api/planned-item/{id}/exists", deps.PlannedItemHandler.Exists).Methods("GET")
	r.HandleFunc("/api/planned-item/{id}/distributions", deps.ItemDistributionHandler.ListByPlannedItem).Methods("GET")
	r.HandleFunc("/api/planned-item/{id}", deps.PlannedItemHandler.Update).Methods("PUT")
	r.HandleFunc("/api/planned-item/{id}", deps.PlannedItemHandler.Delete).Methods("DELETE")

	// Item distributions
	r.HandleFunc("/api/item-distribution", deps.ItemDistributionHandler.Create).Methods("POST")
	r.HandleFunc("/api/item-distribution", deps.ItemDistributionHandler.List).Methods("GET")
	r.HandleFunc("/api/item-distribution/count/all", deps.ItemDistributionHandler.Count).Methods("GET")
	r.HandleFunc("/api/item-distribution/{id}", deps.ItemDistributionHandler.Get).Methods("GET")
	r.HandleFunc("/api/item-distribution/{id}/exists", deps.ItemDistributionHandler.Exists).Methods("GET")
	r.HandleFunc("/api/item-distribution/{id}", deps.ItemDistributionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/item-distribution/{id}", deps.ItemDistributionHandler.Delete).Methods("DELETE")

	// Budget modifications
	r.HandleFunc("/api/budget-modification", deps.BudgetModificationHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget-modification", deps.BudgetModificationHandler.List).Methods("GET")
	r.HandleFunc("/api/budget-modification/count/all", deps.BudgetModificationHandler.Count).Methods("GET")
	r.HandleFunc("/api/budget-modification/{id}", deps.BudgetModificationHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget-modification/{id}/exists", deps.BudgetModificationHandler.Exists).Methods("GET")
	r.HandleFunc("/api/budget-modification/{id}", deps.BudgetModificationHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget-modification/{id}", deps.BudgetModificationHandler.Delete).Methods("DELETE")

	// Military categories and ranks
	r.HandleFunc("/api/military-category", deps.MilitaryCategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/military-category", deps.MilitaryCategoryHandler.List).Methods("GET")
	r.HandleFunc("/api/military-category/search", deps.MilitaryCategoryHandler.Search).Methods("GET")
	r.HandleFunc("/api/military-category/count/all", deps.MilitaryCategoryHandler.Count).Methods("GET")
	r.HandleFunc("/api/military-category/{id}", deps.MilitaryCategoryHandler.Get).Methods("GET")
	r.HandleFunc("/api/military-category/{id}/exists", deps.MilitaryCategoryHandler.Exists).Methods("GET")
	r.HandleFunc("/api/military-category/{id}", deps.MilitaryCategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/military-category/{id}", deps.MilitaryCategoryHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/military-rank", deps.MilitaryRankHandler.Create).Methods("POST")
	r.HandleFunc("/api/military-rank", deps.MilitaryRankHandler.List).Methods("GET")
	r.HandleFunc("/api/military-rank/search", deps.MilitaryRankHandler.Search).Methods("GET")
	r.HandleFunc("/api/military-rank/count/all", deps.MilitaryRankHandler.Count).Methods("GET")
	r.HandleFunc("/api/military-rank/{id}", deps.MilitaryRankHandler.Get).Methods("GET")
	r.HandleFunc("/api/military-rank/{id}/exists", deps.MilitaryRankHandler.Exists).Methods("GET")
	r.HandleFunc("/api/military-rank/{id}", deps.MilitaryRankHandler.Update).Methods("PUT")
	r.HandleFunc("/api/military-rank/{id}", deps.MilitaryRankHandler.Delete).Methods("DELETE")

	// Countries, states, localities
	r.HandleFunc("/api/country", deps.CountryHandler.Create).Methods("POST")
	r.HandleFunc("/api/country", deps.CountryHandler.List).Methods("GET")
	r.HandleFunc("/api/country/search", deps.CountryHandler.Search).Methods("GET")
	r.HandleFunc("/api/country/count/all", deps.CountryHandler.Count).Methods("GET")
	r.HandleFunc("/api/country/code/{code}", deps.CountryHandler.GetByCode).Methods("GET")
	r.HandleFunc("/api/country/{id}", deps.CountryHandler.Get).Methods("GET")
	r.HandleFunc("/api/country/{id}/exists", deps.CountryHandler.Exists).Methods("GET")
	r.HandleFunc("/api/country/{id}", deps.CountryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/country/{id}", deps.CountryHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/state", deps.StateHandler.Create).Methods("POST")
	r.HandleFunc("/api/state", deps.StateHandler.List).Methods("GET")
	r.HandleFunc("/api/state/search", deps.StateHandler.Search).Methods("GET")
	r.HandleFunc("/api/state/count/all", deps.StateHandler.Count).Methods("GET")
	r.HandleFunc("/api/state/{id}", deps.StateHandler.Get).Methods("GET")
	r.HandleFunc("/api/state/{id}/exists", deps.StateHandler.Exists).Methods("GET")
	r.HandleFunc("/api/state/{id}", deps.StateHandler.Update).Methods("PUT")
	r.HandleFunc("/api/state/{id}", deps.StateHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/locality", deps.LocalityHandler.Create).Methods("POST")
	r.HandleFunc("/api/locality", deps.LocalityHandler.List).Methods("GET")
	r.HandleFunc("/api/locality/search", deps.LocalityHandler.Search).Methods("GET")
	r.HandleFunc("/api/locality/count/all", deps.LocalityHandler.Count).Methods("GET")
	r.HandleFunc("/api/locality/{id}", deps.LocalityHandler.Get).Methods("GET")
	r.HandleFunc("/api/locality/{id}/exists", deps.LocalityHandler.Exists).Methods("GET")
	r.HandleFunc("/api/locality/{id}", deps.LocalityHandler.Update).Methods("PUT")
	r.HandleFunc("/api/locality/{id}", deps.LocalityHandler.Delete).Methods("DELETE")

	// Persons
	r.HandleFunc("/api/person", deps.PersonHandler.Create).Methods("POST")
	r.HandleFunc("/api/person", deps.PersonHandler.List).Methods("GET")
	r.HandleFunc("/api/person/search", deps.PersonHandler.Search).Methods("GET")
	r.HandleFunc("/api/person/count/all", deps.PersonHandler.Count).Methods("GET")
	r.HandleFunc("/api/person/{id}", deps.PersonHandler.Get).Methods("GET")
	r.HandleFunc("/api/person/{id}/exists", deps.PersonHandler.Exists).Methods("GET")
	r.HandleFunc("/api/person/{id}", deps.PersonHandler.Update).Methods("PUT")
	r.HandleFunc("/api/person/{id}", deps.PersonHandler.Delete).Methods("DELETE")

	// Jobs and employees
	r.HandleFunc("/api/job", deps.JobHandler.Create).Methods("POST")
	r.HandleFunc("/api/job", deps.JobHandler.List).Methods("GET")
	r.HandleFunc("/api/job/search", deps.JobHandler.Search).Methods("GET")
	r.HandleFunc("/api/job/count/all", deps.JobHandler.Count).Methods("GET")
	r.HandleFunc("/api/job/{id}", deps.JobHandler.Get).Methods("GET")
	r.HandleFunc("/api/job/{id}/exists", deps.JobHandler.Exists).Methods("GET")
	r.HandleFunc("/api/job/{id}", deps.JobHandler.Update).Methods("PUT")
	r.HandleFunc("/api/job/{id}", deps.JobHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/employee", deps.EmployeeHandler.Create).Methods("POST")
	r.HandleFunc("/api/employee", deps.EmployeeHandler.List).Methods("GET")
	r.HandleFunc("/api/employee/count/all", deps.EmployeeHandler.Count).Methods("GET")
	r.HandleFunc("/api/employee/registration/{number}", deps.EmployeeHandler.GetByRegistrationNumber).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Get).Methods("GET")
	r.HandleFunc("/api/employee/{id}/exists", deps.EmployeeHandler.Exists).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Delete).Methods("DELETE")

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
