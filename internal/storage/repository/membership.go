package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// FindMembershipsExpiringTomorrow returns the members whose latest membership
// ends tomorrow, for the reminder scheduler.
func (s *Storage) FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.MembershipReminder, error) {
	const op = "storage.FindMembershipsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.first_name, p.name, m.end_date
			  FROM memberships m
			  JOIN users u ON u.id = m.user_id
			  JOIN plans p ON p.id = m.plan_id
			  WHERE m.end_date::DATE = CURRENT_DATE + INTERVAL '1 day'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MembershipReminder
	for rows.Next() {
		var item models.MembershipReminder
		if err := rows.Scan(&item.Email, &item.FirstName, &item.PlanName, &item.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
