package structure

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	structures map[int64]Structure
	nextID     int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{structures: make(map[int64]Structure), nextID: 1}
}

func (s *StubRepo) Cleanup() {
	s.structures = make(map[int64]Structure)
	s.nextID = 1
}

func (s *StubRepo) Store(_ context.Context, structure Structure) (int64, error) {
	structure.ID = s.nextID
	s.structures[structure.ID] = structure
	s.nextID++
	return structure.ID, nil
}

func (s *StubRepo) FindByID(_ context.Context, id int64) (Structure, error) {
	structure, ok := s.structures[id]
	if !ok {
		return Structure{}, apperr.NotFoundf("structure %d not found", id)
	}
	return structure, nil
}

func (s *StubRepo) FindByUid(_ context.Context, uid string) (Structure, error) {
	for _, structure := range s.structures {
		if structure.Uid == uid {
			return structure, nil
		}
	}
	return Structure{}, apperr.NotFoundf("structure %s not found", uid)
}

func (s *StubRepo) FindAll(_ context.Context, page rest.PageRequest) ([]Structure, error) {
	all := s.sorted()
	start := page.Offset()
	if start >= len(all) {
		return []Structure{}, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *StubRepo) FindRoots(_ context.Context) ([]Structure, error) {
	roots := make([]Structure, 0)
	for _, structure := range s.sorted() {
		if structure.ParentID == nil {
			roots = append(roots, structure)
		}
	}
	return roots, nil
}

func (s *StubRepo) FindChildren(_ context.Context, id int64) ([]Structure, error) {
	return s.childrenOf(id), nil
}

func (s *StubRepo) FindAncestors(_ context.Context, id int64) ([]Structure, error) {
	ancestors := make([]Structure, 0)
	current, ok := s.structures[id]
	if !ok {
		return ancestors, nil
	}
	for current.ParentID != nil {
		parent, ok := s.structures[*current.ParentID]
		if !ok {
			break
		}
		ancestors = append(ancestors, parent)
		current = parent
	}
	return ancestors, nil
}

func (s *StubRepo) FindDescendants(_ context.Context, id int64) ([]Structure, error) {
	descendants := make([]Structure, 0)
	queue := s.childrenOf(id)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		descendants = append(descendants, next)
		queue = append(queue, s.childrenOf(next.ID)...)
	}
	return descendants, nil
}

func (s *StubRepo) Search(_ context.Context, keyword string, _ rest.PageRequest) ([]Structure, error) {
	needle := strings.ToLower(keyword)
	matches := make([]Structure, 0)
	for _, structure := range s.sorted() {
		if strings.Contains(strings.ToLower(structure.DesignationEn), needle) ||
			strings.Contains(strings.ToLower(structure.DesignationFr), needle) ||
			strings.Contains(strings.ToLower(structure.Abbreviation), needle) {
			matches = append(matches, structure)
		}
	}
	return matches, nil
}

func (s *StubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.structures)), nil
}

func (s *StubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.structures[id]
	return ok, nil
}

func (s *StubRepo) Update(_ context.Context, structure Structure) (bool, error) {
	if _, ok := s.structures[structure.ID]; !ok {
		return false, nil
	}
	s.structures[structure.ID] = structure
	return true, nil
}

func (s *StubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.structures[id]; !ok {
		return false, nil
	}
	if len(s.childrenOf(id)) > 0 {
		return false, apperr.Conflictf("structure %d still has child structures", id)
	}
	delete(s.structures, id)
	return true, nil
}

func (s *StubRepo) childrenOf(id int64) []Structure {
	children := make([]Structure, 0)
	for _, structure := range s.sorted() {
		if structure.ParentID != nil && *structure.ParentID == id {
			children = append(children, structure)
		}
	}
	return children
}

func (s *StubRepo) sorted() []Structure {
	all := make([]Structure, 0, len(s.structures))
	for _, structure := range s.structures {
		all = append(all, structure)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

type StubTypeRepo struct {
	types  map[int64]StructureType
	nextID int64
}

func NewStubTypeRepo() *StubTypeRepo {
	return &StubTypeRepo{types: make(map[int64]StructureType), nextID: 1}
}

func (s *StubTypeRepo) Cleanup() {
	s.types = make(map[int64]StructureType)
	s.nextID = 1
}

func (s *StubTypeRepo) Store(_ context.Context, structureType StructureType) (int64, error) {
	structureType.ID = s.nextID
	s.types[structureType.ID] = structureType
	s.nextID++
	return structureType.ID, nil
}

func (s *StubTypeRepo) FindByID(_ context.Context, id int64) (StructureType, error) {
	structureType, ok := s.types[id]
	if !ok {
		return StructureType{}, apperr.NotFoundf("structure type %d not found", id)
	}
	return structureType, nil
}

func (s *StubTypeRepo) FindAll(_ context.Context) ([]StructureType, error) {
	all := make([]StructureType, 0, len(s.types))
	for _, structureType := range s.types {
		all = append(all, structureType)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *StubTypeRepo) Search(ctx context.Context, keyword string) ([]StructureType, error) {
	all, _ := s.FindAll(ctx)
	needle := strings.ToLower(keyword)
	matches := make([]StructureType, 0)
	for _, structureType := range all {
		if strings.Contains(strings.ToLower(structureType.DesignationAr), needle) ||
			strings.Contains(strings.ToLower(structureType.DesignationEn), needle) ||
			strings.Contains(strings.ToLower(structureType.DesignationFr), needle) {
			matches = append(matches, structureType)
		}
	}
	return matches, nil
}

func (s *StubTypeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.types)), nil
}

func (s *StubTypeRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.types[id]
	return ok, nil
}

func (s *StubTypeRepo) Update(_ context.Context, structureType StructureType) (bool, error) {
	if _, ok := s.types[structureType.ID]; !ok {
		return false, nil
	}
	s.types[structureType.ID] = structureType
	return true, nil
}

func (s *StubTypeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.types[id]; !ok {
		return false, nil
	}
	delete(s.types, id)
	return true, nil
}
