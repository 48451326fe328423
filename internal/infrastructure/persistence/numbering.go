package persistence

import (
	"context"
	"fmt"

	"github.com/erp/accounting/internal/domain/shared"
	"gorm.io/gorm"
)

// DefaultNumberAttempts is used when a repository is built without a retry budget
const DefaultNumberAttempts = 5

// numberer assigns generated codes by inserting and retrying on unique violations,
// so concurrent creators never need to lock the whole table
type numberer struct {
	seq      shared.Sequence
	table    string
	column   string
	subject  string
	attempts int
}

func newNumberer(seq shared.Sequence, table, column, subject string, attempts int) numberer {
	if attempts < 1 {
		attempts = DefaultNumberAttempts
	}
	return numberer{seq: seq, table: table, column: column, subject: subject, attempts: attempts}
}

// next previews the code following the greatest existing member of the sequence
func (n numberer) next(ctx context.Context, db *gorm.DB) (string, error) {
	var existing []string
	if err := db.WithContext(ctx).
		Table(n.table).
		Where(n.column+" LIKE ?", n.seq.Pattern()).
		Pluck(n.column, &existing).Error; err != nil {
		return "", fmt.Errorf("failed to read %s numbers: %w", n.subject, err)
	}
	return n.seq.Next(existing...), nil
}

// insert runs write in a transaction with *code assigned. A caller-supplied code that collides
// is Conflict at once; a generated one is recomputed and retried up to the attempt budget.
func (n numberer) insert(ctx context.Context, db *gorm.DB, code *string, write func(tx *gorm.DB) error) error {
	if *code != "" {
		return writeConstraint(db.WithContext(ctx).Transaction(write), fmt.Sprintf("%s %s", n.subject, *code))
	}

	for attempt := 1; attempt <= n.attempts; attempt++ {
		next, err := n.next(ctx, db)
		if err != nil {
			return err
		}
		*code = next

		err = db.WithContext(ctx).Transaction(write)
		if err == nil {
			return nil
		}
		if IsUniqueViolation(err) {
			taken, terr := n.taken(ctx, db, next)
			if terr != nil {
				*code = ""
				return terr
			}
			if taken {
				continue
			}
		}
		*code = ""
		return writeConstraint(err, n.subject)
	}
	*code = ""
	return shared.NewConflict("could not assign a unique %s number after %d attempts", n.subject, n.attempts)
}

// taken distinguishes a number collision from a violation of another unique column
func (n numberer) taken(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Table(n.table).
		Where(n.column+" = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
