package dayoff

import (
	"context"
	"errors"
)

var ErrInvalidRange = errors.New("start date must be on or before end date")

type Service interface {
	Create(ctx context.Context, req CreatePeriodRequest) (*Period, error)
	GetAll(ctx context.Context) ([]Period, error)
	Update(ctx context.Context, id int, req CreatePeriodRequest) (*Period, error)
	Delete(ctx context.Context, id int) error

	// Check reports whether the business is closed on the given date and,
	// if so, which period applies.
	Check(ctx context.Context, date string) (*Period, bool, error)

	// CurrentBanner returns the banner to show on the public site today,
	// if any period covering today has one enabled.
	CurrentBanner(ctx context.Context, today string) (*Period, bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreatePeriodRequest) (*Period, error) {
	if err := validateRange(req); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *service) GetAll(ctx context.Context) ([]Period, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Update(ctx context.Context, id int, req CreatePeriodRequest) (*Period, error) {
	if err := validateRange(req); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Check(ctx context.Context, date string) (*Period, bool, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, false, err
	}

	periods, err := s.repo.GetCovering(ctx, date)
	if err != nil {
		return nil, false, err
	}

	if len(periods) == 0 {
		return nil, false, nil
	}

	return &periods[0], true, nil
}

func (s *service) CurrentBanner(ctx context.Context, today string) (*Period, bool, error) {
	period, closed, err := s.Check(ctx, today)
	if err != nil || !closed {
		return nil, false, err
	}

	if !period.ShowBanner || period.BannerMessage == nil {
		return nil, false, nil
	}

	return period, true, nil
}

func validateRange(req CreatePeriodRequest) error {
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}
