package mongodb

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// UnitOfWork implementa ports.UnitOfWork com sessões do MongoDB.
// Transações exigem replica set; sem elas fn roda diretamente.
type UnitOfWork struct {
	client       *mongo.Client
	transactions bool
}

// NewUnitOfWork cria um novo UnitOfWork
func NewUnitOfWork(client *mongo.Client, transactions bool) ports.UnitOfWork {
	return &UnitOfWork{client: client, transactions: transactions}
}

func (uow *UnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if !uow.transactions || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := uow.client.StartSession()
	if err != nil {
		return pkgerrors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// translateError converte erros do driver para os erros dos repositórios
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicateKey
	}
	return pkgerrors.Wrap(err, op)
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
