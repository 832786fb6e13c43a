package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

const (
	dremioJobPollInterval = 2 * time.Second
	dremioResultPageSize  = 500
)

// DremioWarehouse implements Warehouse over the Dremio REST API:
// token login, SQL job submit/poll/fetch, catalog and collaboration-wiki
// endpoints. Pooling, retry and backoff are left to the http.Client and
// the deployment; this adapter only translates calls.
type DremioWarehouse struct {
	baseURL  string
	username string
	password string
	token    string
	http     *http.Client
	logger   *zap.Logger
}

// DremioConfig holds connection settings for a Dremio coordinator.
type DremioConfig struct {
	Endpoint string // e.g. "http://localhost:9047"
	Username string
	Password string
}

// NewDremioWarehouse creates and authenticates a Dremio-backed warehouse.
func NewDremioWarehouse(ctx context.Context, cfg *DremioConfig, logger *zap.Logger) (*DremioWarehouse, error) {
	w := &DremioWarehouse{
		baseURL:  strings.TrimSuffix(cfg.Endpoint, "/"),
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{},
		logger:   logger.Named("dremio"),
	}
	if err := w.authenticate(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// authenticate obtains the session token used on every later request.
func (w *DremioWarehouse) authenticate(ctx context.Context) error {
	body, _ := json.Marshal(map[string]string{
		"userName": w.username,
		"password": w.password,
	})

	var resp struct {
		Token string `json:"token"`
	}
	if err := w.doJSON(ctx, http.MethodPost, "/apiv2/login", body, &resp); err != nil {
		return fmt.Errorf("dremio login: %w", err)
	}
	if resp.Token == "" {
		return fmt.Errorf("dremio login: empty token")
	}
	w.token = resp.Token
	w.logger.Info("authenticated", zap.String("endpoint", w.baseURL))
	return nil
}

// ListTables queries the information schema and normalizes each
// (table_schema, table_name) pair into a FullyQualifiedName.
func (w *DremioWarehouse) ListTables(ctx context.Context) ([]models.FullyQualifiedName, error) {
	result, err := w.Execute(ctx,
		`SELECT table_schema, table_name FROM INFORMATION_SCHEMA."TABLES" `+
			`WHERE table_type IN ('TABLE','VIEW') ORDER BY table_schema, table_name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]models.FullyQualifiedName, 0, len(result.Rows))
	for _, row := range result.Rows {
		schema, _ := row["table_schema"].(string)
		name, _ := row["table_name"].(string)
		tables = append(tables, NormalizeEntry(schema, name))
	}
	return tables, nil
}

// GetSchema returns column name/type pairs from the information schema.
func (w *DremioWarehouse) GetSchema(ctx context.Context, table models.FullyQualifiedName) ([]models.ColumnSchema, error) {
	result, err := w.Execute(ctx, fmt.Sprintf(
		`SELECT column_name, data_type FROM INFORMATION_SCHEMA."COLUMNS" `+
			`WHERE table_name = '%s' ORDER BY ordinal_position`,
		strings.ReplaceAll(table.Table(), "'", "''")))
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}

	columns := make([]models.ColumnSchema, 0, len(result.Rows))
	for _, row := range result.Rows {
		name, _ := row["column_name"].(string)
		typ, _ := row["data_type"].(string)
		columns = append(columns, models.ColumnSchema{ColumnName: name, DataType: typ})
	}
	return columns, nil
}

// Execute submits the statement as a job, waits for completion, and
// pages through the results. Cancellation of ctx aborts the wait.
func (w *DremioWarehouse) Execute(ctx context.Context, sqlText string) (*models.TabularResult, error) {
	body, _ := json.Marshal(map[string]string{"sql": sqlText})

	var submitted struct {
		ID string `json:"id"`
	}
	if err := w.doJSON(ctx, http.MethodPost, "/api/v3/sql", body, &submitted); err != nil {
		return nil, fmt.Errorf("submit sql: %w", err)
	}

	if err := w.waitForJob(ctx, submitted.ID); err != nil {
		return nil, err
	}
	return w.fetchResults(ctx, submitted.ID)
}

// waitForJob polls job state until a terminal state or ctx cancellation.
func (w *DremioWarehouse) waitForJob(ctx context.Context, jobID string) error {
	ticker := time.NewTicker(dremioJobPollInterval)
	defer ticker.Stop()

	for {
		var job struct {
			JobState     string `json:"jobState"`
			ErrorMessage string `json:"errorMessage"`
		}
		if err := w.doJSON(ctx, http.MethodGet, "/api/v3/job/"+jobID, nil, &job); err != nil {
			return fmt.Errorf("poll job %s: %w", jobID, err)
		}

		switch job.JobState {
		case "COMPLETED":
			return nil
		case "FAILED", "CANCELED":
			return fmt.Errorf("job %s %s: %s", jobID, strings.ToLower(job.JobState), job.ErrorMessage)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// fetchResults pages through job results and flattens them.
func (w *DremioWarehouse) fetchResults(ctx context.Context, jobID string) (*models.TabularResult, error) {
	result := &models.TabularResult{Rows: []map[string]any{}}
	offset := 0

	for {
		var page struct {
			RowCount int `json:"rowCount"`
			Schema   []struct {
				Name string `json:"name"`
			} `json:"schema"`
			Rows []map[string]any `json:"rows"`
		}
		path := fmt.Sprintf("/api/v3/job/%s/results?offset=%d&limit=%d", jobID, offset, dremioResultPageSize)
		if err := w.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, fmt.Errorf("fetch results %s: %w", jobID, err)
		}

		if result.Columns == nil {
			for _, col := range page.Schema {
				result.Columns = append(result.Columns, col.Name)
			}
		}
		result.Rows = append(result.Rows, page.Rows...)

		offset += len(page.Rows)
		if len(page.Rows) == 0 || offset >= page.RowCount {
			return result, nil
		}
	}
}

// GetWikiText resolves the table to a catalog entity and fetches its
// collaboration wiki. A missing wiki is ("", nil).
func (w *DremioWarehouse) GetWikiText(ctx context.Context, table models.FullyQualifiedName) (string, error) {
	entityID, err := w.entityID(ctx, table)
	if err != nil || entityID == "" {
		return "", err
	}

	var wikiResp struct {
		Text string `json:"text"`
	}
	err = w.doJSON(ctx, http.MethodGet, "/api/v3/catalog/"+entityID+"/collaboration/wiki", nil, &wikiResp)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get wiki: %w", err)
	}
	return wikiResp.Text, nil
}

// entityID looks up the catalog id for a dotted table path.
func (w *DremioWarehouse) entityID(ctx context.Context, table models.FullyQualifiedName) (string, error) {
	var pathParts []string
	for _, seg := range table.Segments() {
		pathParts = append(pathParts, url.PathEscape(seg))
	}

	var entity struct {
		ID string `json:"id"`
	}
	err := w.doJSON(ctx, http.MethodGet, "/api/v3/catalog/by-path/"+strings.Join(pathParts, "/"), nil, &entity)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("resolve entity %s: %w", table, err)
	}
	return entity.ID, nil
}

// Close implements Warehouse. The REST session needs no teardown.
func (w *DremioWarehouse) Close() error { return nil }

// statusError carries a non-2xx response status.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("dremio returned %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

// doJSON issues one request with auth headers and decodes the response.
func (w *DremioWarehouse) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, w.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "_dremio"+w.token)
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(buf.String())}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ Warehouse = (*DremioWarehouse)(nil)
