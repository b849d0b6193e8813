package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/trace"
)

// WarehouseStore is the subset of the warehouse service's store payload the
// login flows surface back to POS/franchise clients.
type WarehouseStore struct {
	ID            int64    `json:"id"`
	ExtStoreID    int64    `json:"extStoreId"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Active        int      `json:"active"`
	StoreType     string   `json:"storeType"`
	StoreCategory string   `json:"storeCategory"`
	Assets        []string `json:"assets"`
	OpenTime      string   `json:"openTime"`
	Status        string   `json:"status"`
}

// WarehouseClient fetches store details from the warehouse service.
type WarehouseClient interface {
	GetStoresByIDs(ctx context.Context, storeIDs []string) ([]WarehouseStore, error)
}

type warehouseClient struct {
	http      *resty.Client
	baseURL   string
	rzAuthKey string
}

func NewWarehouseClient(baseURL, rzAuthKey string, timeout time.Duration) WarehouseClient {
	return &warehouseClient{
		http:      resty.New().SetTimeout(timeout),
		baseURL:   baseURL,
		rzAuthKey: rzAuthKey,
	}
}

func (c *warehouseClient) GetStoresByIDs(ctx context.Context, storeIDs []string) ([]WarehouseStore, error) {
	if len(storeIDs) == 0 {
		return []WarehouseStore{}, nil
	}
	var stores []WarehouseStore
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetHeader("rz-auth-key", c.rzAuthKey).
		SetQueryParam("ids", strings.Join(storeIDs, ",")).
		SetResult(&stores).
		Get(c.baseURL + "/api/v1/stores")
	if err != nil {
		log.Printf("warehouse_stores trace_id=%s error=%q", trace.ID(ctx), err.Error())
		return nil, ErrWarehouse
	}
	if resp.IsError() {
		log.Printf("warehouse_stores trace_id=%s status=%d", trace.ID(ctx), resp.StatusCode())
		return nil, fmt.Errorf("%w: status %d", ErrWarehouse, resp.StatusCode())
	}
	return stores, nil
}
