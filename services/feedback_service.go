package services

import (
	"context"
	"fmt"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/shopspring/decimal"
)

type FeedbackService struct {
	Feedback    *repository.FeedbackRepository
	Orders      *repository.OrderRepository
	Restaurants *repository.RestaurantRepository
	// Policy decides what a second submission for the same order does.
	Policy string
}

func NewFeedbackService(
	feedback *repository.FeedbackRepository,
	orders *repository.OrderRepository,
	restaurants *repository.RestaurantRepository,
	policy string,
) *FeedbackService {
	return &FeedbackService{Feedback: feedback, Orders: orders, Restaurants: restaurants, Policy: policy}
}

type Rating struct {
	RestaurantID uint            `json:"restaurant_id"`
	Average      decimal.Decimal `json:"average_rating"`
	Count        int             `json:"count"`
}

// Submit records the customer's rating for a delivered order.
func (s *FeedbackService) Submit(ctx context.Context, p *auth.Principal, orderID uint, rating int, comment string) (*models.Feedback, error) {
	if err := requireRole(p, models.RoleCustomer); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5",
			apperror.FieldError{Field: "rating", Rule: "range", Message: "must be between 1 and 5"})
	}
	order, err := s.Orders.FindForCustomer(ctx, p.ID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusDelivered {
		return nil, apperror.Conflict(fmt.Sprintf("feedback is only accepted for delivered orders, this order is %s", order.Status))
	}

	if s.Policy != config.FeedbackPolicyAllow {
		existing, err := s.Feedback.FindForOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if s.Policy != config.FeedbackPolicyOverwrite {
				return nil, apperror.Conflict("feedback has already been submitted for this order")
			}
			if err := s.Feedback.UpdateContent(ctx, existing.ID, rating, comment); err != nil {
				return nil, err
			}
			existing.Rating = rating
			existing.Comment = comment
			return existing, nil
		}
	}

	fb := models.Feedback{
		OrderID:      order.ID,
		CustomerID:   p.ID,
		RestaurantID: order.RestaurantID,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.Feedback.Create(ctx, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (s *FeedbackService) List(ctx context.Context, orderID uint) ([]models.FeedbackView, error) {
	return s.Feedback.ListForOrder(ctx, orderID)
}

// RestaurantRating averages every rating of the restaurant to two decimals.
func (s *FeedbackService) RestaurantRating(ctx context.Context, restID uint) (*Rating, error) {
	if _, err := s.Restaurants.FindByID(ctx, restID); err != nil {
		return nil, err
	}
	ratings, err := s.Feedback.Ratings(ctx, restID)
	if err != nil {
		return nil, err
	}
	out := &Rating{RestaurantID: restID, Average: decimal.Zero, Count: len(ratings)}
	if len(ratings) == 0 {
		return out, nil
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	out.Average = sum.DivRound(decimal.NewFromInt(int64(len(ratings))), 2)
	return out, nil
}
