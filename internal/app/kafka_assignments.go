package app

import (
	"context"
	"errors"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/service/assignments"
	"paquexpress-service/internal/transport/kafka"
)

type assignmentHandler interface {
	Handle(ctx context.Context, e assignments.Event) error
}

// makeAssignmentsKafka marks events that can never succeed as permanent.
func makeAssignmentsKafka(p assignmentHandler) kafka.HandleFunc {
	return func(ctx context.Context, e assignments.Event) error {
		err := p.Handle(ctx, e)
		if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrNotFound) {
			return kafka.Permanent(err)
		}
		return err
	}
}
