package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core/meeting"
)

type meetingRepository struct {
	db *sqlx.DB
}

var _ meeting.Repository = (*meetingRepository)(nil) // interface compliance check

func NewMeetingRepository(db *sqlx.DB) *meetingRepository {
	return &meetingRepository{db: db}
}

type meetingRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Date      time.Time `db:"date"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type actionItemRow struct {
	ID          string    `db:"id"`
	MeetingID   string    `db:"meeting_id"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	Position    int       `db:"position"`
}

type itemDepartmentRow struct {
	ActionItemID string `db:"action_item_id"`
	ID           string `db:"id"`
	Name         string `db:"name"`
	FullName     string `db:"full_name"`
}

func trapMeetingNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return meeting.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo meetingRepository) CreateMeeting(ctx context.Context, nm meeting.NewMeeting) (meeting.Meeting, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "beginning meeting insert")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meeting (id, title, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, nm.Title, nm.Date.UTC(), nm.Notes, now, now,
	)
	if err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "inserting meeting")
	}
	for i, item := range nm.ActionItems {
		if err = insertActionItem(ctx, tx, id, uuid.New().String(), i, item); err != nil {
			return meeting.Meeting{}, err
		}
	}
	if err = tx.Commit(); err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "committing meeting insert")
	}

	return repo.GetMeetingByID(ctx, id)
}

func insertActionItem(ctx context.Context, tx *sqlx.Tx, meetingID, itemID string, position int, item meeting.NewActionItem) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO action_item (id, meeting_id, description, due_date, position)
		VALUES ($1, $2, $3, $4, $5)`,
		itemID, meetingID, item.Description, item.DueDate.UTC(), position,
	)
	if err != nil {
		return errors.Wrap(err, "inserting action item")
	}
	return linkItemDepartments(ctx, tx, itemID, item.DepartmentIDs)
}

// linkItemDepartments links the item to every department id that exists;
// unknown ids are dropped rather than failing the whole write.
func linkItemDepartments(ctx context.Context, tx *sqlx.Tx, itemID string, departmentIDs []string) error {
	if len(departmentIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO action_item_department (action_item_id, department_id)
		SELECT $1, id FROM department WHERE id = ANY($2)
		ON CONFLICT DO NOTHING`,
		itemID, pq.Array(departmentIDs),
	)
	return errors.Wrap(err, "linking action item departments")
}

func (repo meetingRepository) QueryAllMeetings(ctx context.Context) ([]meeting.Meeting, error) {
	var rows []meetingRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT id, title, date, notes, created_at, updated_at
		FROM meeting ORDER BY date DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying meetings")
	}

	meetings := make([]meeting.Meeting, 0, len(rows))
	ids := make([]string, 0, len(rows))
	byID := make(map[string]int, len(rows))
	for i, r := range rows {
		meetings = append(meetings, meeting.Meeting{
			ID:          r.ID,
			Title:       r.Title,
			Date:        r.Date,
			Notes:       r.Notes,
			ActionItems: []meeting.ActionItem{},
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
		ids = append(ids, r.ID)
		byID[r.ID] = i
	}
	if len(ids) == 0 {
		return meetings, nil
	}

	items, err := repo.loadActionItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for meetingID, its := range items {
		meetings[byID[meetingID]].ActionItems = its
	}
	return meetings, nil
}

func (repo meetingRepository) GetMeetingByID(ctx context.Context, id string) (meeting.Meeting, error) {
	var row meetingRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT id, title, date, notes, created_at, updated_at
		FROM meeting WHERE id = $1`, id)
	if err != nil {
		return meeting.Meeting{}, trapMeetingNoRowsErr(err, "getting meeting")
	}

	m := meeting.Meeting{
		ID:          row.ID,
		Title:       row.Title,
		Date:        row.Date,
		Notes:       row.Notes,
		ActionItems: []meeting.ActionItem{},
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	items, err := repo.loadActionItems(ctx, []string{id})
	if err != nil {
		return meeting.Meeting{}, err
	}
	if its, ok := items[id]; ok {
		m.ActionItems = its
	}
	return m, nil
}

// loadActionItems eagerly loads action items and their department refs for
// the given meetings, keyed by meeting id and ordered by position.
func (repo meetingRepository) loadActionItems(ctx context.Context, meetingIDs []string) (map[string][]meeting.ActionItem, error) {
	var iRows []actionItemRow
	err := repo.db.SelectContext(ctx, &iRows, `
		SELECT id, meeting_id, description, due_date, position
		FROM action_item WHERE meeting_id = ANY($1) ORDER BY meeting_id, position`,
		pq.Array(meetingIDs))
	if err != nil {
		return nil, errors.Wrap(err, "querying action items")
	}
	if len(iRows) == 0 {
		return map[string][]meeting.ActionItem{}, nil
	}

	itemIDs := make([]string, 0, len(iRows))
	for _, r := range iRows {
		itemIDs = append(itemIDs, r.ID)
	}
	var dRows []itemDepartmentRow
	err = repo.db.SelectContext(ctx, &dRows, `
		SELECT aid.action_item_id, d.id, d.name, d.full_name
		FROM action_item_department aid
		JOIN department d ON d.id = aid.department_id
		WHERE aid.action_item_id = ANY($1)
		ORDER BY d.name`,
		pq.Array(itemIDs))
	if err != nil {
		return nil, errors.Wrap(err, "querying action item departments")
	}
	refsByItem := make(map[string][]meeting.DepartmentRef, len(iRows))
	for _, r := range dRows {
		refsByItem[r.ActionItemID] = append(refsByItem[r.ActionItemID], meeting.DepartmentRef{
			ID: r.ID, Name: r.Name, FullName: r.FullName,
		})
	}

	items := make(map[string][]meeting.ActionItem, len(meetingIDs))
	for _, r := range iRows {
		refs := refsByItem[r.ID]
		if refs == nil {
			refs = []meeting.DepartmentRef{}
		}
		items[r.MeetingID] = append(items[r.MeetingID], meeting.ActionItem{
			ID:          r.ID,
			Description: r.Description,
			DueDate:     r.DueDate,
			Departments: refs,
		})
	}
	return items, nil
}

func (repo meetingRepository) UpdateMeeting(ctx context.Context, id string, nm meeting.NewMeeting) (meeting.Meeting, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "beginning meeting update")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE meeting SET title = $2, date = $3, notes = $4, updated_at = $5 WHERE id = $1`,
		id, nm.Title, nm.Date.UTC(), nm.Notes, time.Now().UTC(),
	)
	if err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "updating meeting")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return meeting.Meeting{}, meeting.ErrNotFound
	}

	// Reconcile action items against the submitted list: update the ones
	// keeping their id, drop the rest, insert the new ones.
	var existing []string
	if err = tx.SelectContext(ctx, &existing, `SELECT id FROM action_item WHERE meeting_id = $1`, id); err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "querying existing action items")
	}
	known := make(map[string]bool, len(existing))
	for _, itemID := range existing {
		known[itemID] = true
	}

	kept := make([]string, 0, len(nm.ActionItems))
	for i, item := range nm.ActionItems {
		if item.ID != "" && known[item.ID] {
			_, err = tx.ExecContext(ctx, `
				UPDATE action_item SET description = $2, due_date = $3, position = $4 WHERE id = $1`,
				item.ID, item.Description, item.DueDate.UTC(), i,
			)
			if err != nil {
				return meeting.Meeting{}, errors.Wrap(err, "updating action item")
			}
			if _, err = tx.ExecContext(ctx, `DELETE FROM action_item_department WHERE action_item_id = $1`, item.ID); err != nil {
				return meeting.Meeting{}, errors.Wrap(err, "clearing action item departments")
			}
			if err = linkItemDepartments(ctx, tx, item.ID, item.DepartmentIDs); err != nil {
				return meeting.Meeting{}, err
			}
			kept = append(kept, item.ID)
			continue
		}
		newID := uuid.New().String()
		if err = insertActionItem(ctx, tx, id, newID, i, item); err != nil {
			return meeting.Meeting{}, err
		}
		kept = append(kept, newID)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM action_item WHERE meeting_id = $1 AND NOT (id = ANY($2))`,
		id, pq.Array(kept),
	)
	if err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "pruning action items")
	}
	if err = tx.Commit(); err != nil {
		return meeting.Meeting{}, errors.Wrap(err, "committing meeting update")
	}

	return repo.GetMeetingByID(ctx, id)
}

func (repo meetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM meeting WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting meeting")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return meeting.ErrNotFound
	}
	return nil
}
