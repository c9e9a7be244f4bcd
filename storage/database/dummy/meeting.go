package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tujenge/mipango/core/meeting"
)

type meetingRepository struct {
	db     *meetingTable
	deptDB *departmentTable
}

var _ meeting.Repository = (*meetingRepository)(nil) // interface compliance check

func NewMeetingRepository(db *DB) meeting.Repository {
	return &meetingRepository{db: db.meeting, deptDB: db.department}
}

// resolveDepartments turns department ids into refs, dropping unknown ids.
// Caller holds at least a read lock on deptDB.
func (repo *meetingRepository) resolveDepartments(ids []string) []meeting.DepartmentRef {
	refs := make([]meeting.DepartmentRef, 0, len(ids))
	for _, id := range ids {
		if d, ok := repo.deptDB.table[id]; ok {
			refs = append(refs, meeting.DepartmentRef{ID: d.ID, Name: d.Name, FullName: d.FullName})
		}
	}
	return refs
}

func (repo *meetingRepository) CreateMeeting(ctx context.Context, nm meeting.NewMeeting) (meeting.Meeting, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.deptDB.RLock()
	defer repo.deptDB.RUnlock()

	now := time.Now().UTC()
	m := meeting.Meeting{
		ID:          uuid.New().String(),
		Title:       nm.Title,
		Date:        nm.Date.UTC(),
		Notes:       nm.Notes,
		ActionItems: make([]meeting.ActionItem, 0, len(nm.ActionItems)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, item := range nm.ActionItems {
		m.ActionItems = append(m.ActionItems, meeting.ActionItem{
			ID:          uuid.New().String(),
			Description: item.Description,
			DueDate:     item.DueDate.UTC(),
			Departments: repo.resolveDepartments(item.DepartmentIDs),
		})
	}
	repo.db.table[m.ID] = &m
	return m, nil
}

func (repo *meetingRepository) QueryAllMeetings(ctx context.Context) ([]meeting.Meeting, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	meetings := make([]meeting.Meeting, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		meetings = append(meetings, *m)
	}
	sort.Slice(meetings, func(i, j int) bool { return meetings[i].Date.After(meetings[j].Date) })
	return meetings, nil
}

func (repo *meetingRepository) GetMeetingByID(ctx context.Context, id string) (meeting.Meeting, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return meeting.Meeting{}, meeting.ErrNotFound
}

func (repo *meetingRepository) UpdateMeeting(ctx context.Context, id string, nm meeting.NewMeeting) (meeting.Meeting, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.deptDB.RLock()
	defer repo.deptDB.RUnlock()

	orig, ok := repo.db.table[id]
	if !ok {
		return meeting.Meeting{}, meeting.ErrNotFound
	}

	known := make(map[string]bool, len(orig.ActionItems))
	for _, item := range orig.ActionItems {
		known[item.ID] = true
	}

	// items keeping their id stay under it; the rest get fresh ids
	items := make([]meeting.ActionItem, 0, len(nm.ActionItems))
	for _, item := range nm.ActionItems {
		itemID := item.ID
		if itemID == "" || !known[itemID] {
			itemID = uuid.New().String()
		}
		items = append(items, meeting.ActionItem{
			ID:          itemID,
			Description: item.Description,
			DueDate:     item.DueDate.UTC(),
			Departments: repo.resolveDepartments(item.DepartmentIDs),
		})
	}

	orig.Title = nm.Title
	orig.Date = nm.Date.UTC()
	orig.Notes = nm.Notes
	orig.ActionItems = items
	orig.UpdatedAt = time.Now().UTC()

	repo.db.table[id] = orig
	return *orig, nil
}

func (repo *meetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return meeting.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
