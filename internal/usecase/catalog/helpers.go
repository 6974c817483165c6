package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

func findService(ctx context.Context, repo domain.Repository, id uint) (*models.Service, error) {
	s, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessMsg("service_not_found",
				fmt.Sprintf("Serviço com ID %d não encontrado.", id))
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func validDuration(min int) error {
	if min <= 0 {
		return httperr.ErrBusiness("invalid_duration")
	}
	return nil
}

// ------------------------------------------------------
// chaves de cache
// ------------------------------------------------------

func listKey(f domain.ListFilter) string {
	key := "list:all"
	if f.Active != nil {
		key = "list:ativo=" + strconv.FormatBool(*f.Active)
	}
	if f.Query != "" {
		key += ":q=" + f.Query
	}
	return key
}

func itemKey(id uint) string {
	return "item:" + strconv.FormatUint(uint64(id), 10)
}
