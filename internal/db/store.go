package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daybook-backend/internal/journal"
)

// Store 基于 gorm 的 EntryStore / UserStore
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

func storeErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return journal.ErrNotFound
	}
	return journal.WrapStore(op, err)
}

func (s *Store) Create(ctx context.Context, e *journal.Entry) error {
	row, err := FromDomain(e)
	if err != nil {
		return err
	}
	if err := s.conn.WithContext(ctx).Create(row).Error; err != nil {
		return storeErr("create entry", err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*journal.Entry, error) {
	var row Entry
	if err := s.conn.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, storeErr("find entry", err)
	}
	return ToDomain(&row)
}

func (s *Store) FindMany(ctx context.Context, f journal.Filter, order journal.OrderBy) ([]*journal.Entry, error) {
	q := s.conn.WithContext(ctx).Model(&Entry{})
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if !f.CreatedFrom.IsZero() {
		q = q.Where("created_at >= ?", f.CreatedFrom)
	}
	if !f.CreatedTo.IsZero() {
		q = q.Where("created_at < ?", f.CreatedTo)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		q = q.Where("status IN ?", statuses)
	}
	col := string(journal.OrderByCreatedAt)
	if order.Field == journal.OrderByUpdatedAt {
		col = string(journal.OrderByUpdatedAt)
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: order.Desc})

	var rows []Entry
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr("find entries", err)
	}
	out := make([]*journal.Entry, 0, len(rows))
	for i := range rows {
		e, err := ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Update 先读后写整行，patch 只改动非 nil 字段
func (s *Store) Update(ctx context.Context, id string, p journal.Patch) error {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Apply(current)
	row, err := FromDomain(current)
	if err != nil {
		return err
	}
	if err := s.conn.WithContext(ctx).Save(row).Error; err != nil {
		return storeErr("update entry", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.conn.WithContext(ctx).Where("id = ?", id).Delete(&Entry{})
	if res.Error != nil {
		return storeErr("delete entry", res.Error)
	}
	if res.RowsAffected == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, id string) (*journal.User, error) {
	var u User
	if err := s.conn.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, storeErr("find user", err)
	}
	return &journal.User{ID: u.ID, Email: u.Email, Preference: u.Preference}, nil
}

func (s *Store) UpsertUser(ctx context.Context, u *journal.User) error {
	row := User{ID: u.ID, Email: u.Email, Preference: u.Preference}
	err := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "preference"}),
	}).Create(&row).Error
	if err != nil {
		return storeErr("upsert user", err)
	}
	return nil
}
