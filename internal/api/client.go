package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"

	"xtart-crm/internal/logger"
	"xtart-crm/internal/models"
	"xtart-crm/internal/session"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Client talks to the CRM backend. One shared session (cookie jar) covers
// the whole application run, the way the backend's form login expects.
// Every successful JSON body is passed through Normalize before being
// decoded, so callers only ever see the internal field convention.
//
// Transport or parse failures surface as a false ok flag; an empty list is
// a valid result and never conflated with failure.
type Client struct {
	http *resty.Client
	log  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	jar, _ := cookiejar.New(nil)

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		log:  log,
	}
}

// Login posts the form-encoded credentials. A 200 response carries
// "rol,nombre" as plain text; anything else is a failed login.
func (c *Client) Login(username, password string) (*session.Session, error) {
	resp, err := c.http.R().
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		Post("/login")
	if err != nil {
		c.log.Error("APIClient", err, map[string]interface{}{"endpoint": "login"})
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, ErrInvalidCredentials
	}

	role, name, found := strings.Cut(strings.TrimSpace(string(resp.Body())), ",")
	if !found {
		return nil, fmt.Errorf("unexpected login response: %q", resp.Body())
	}

	sess := session.New(username, name, role)
	c.log.Info("APIClient", "login successful", map[string]interface{}{
		"username": username,
		"role":     sess.Role,
	})
	return sess, nil
}

// Agents (comerciales)

func (c *Client) Agents() ([]models.Agent, bool) {
	items, ok := c.fetchList("/comerciales", nil)
	if !ok {
		return nil, false
	}
	return lo.Map(items, func(m map[string]interface{}, _ int) models.Agent {
		return models.AgentFromMap(m)
	}), true
}

func (c *Client) Agent(id int64) (models.Agent, bool) {
	m, ok := c.fetchOne(fmt.Sprintf("/comerciales/%d", id))
	if !ok {
		return models.Agent{}, false
	}
	return models.AgentFromMap(m), true
}

func (c *Client) CreateAgent(data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPost, "/comerciales", data, nil)
	return ok
}

func (c *Client) UpdateAgent(id int64, data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPut, fmt.Sprintf("/comerciales/%d", id), data, nil)
	return ok
}

func (c *Client) DeleteAgent(id int64) bool {
	_, ok := c.request(resty.MethodDelete, fmt.Sprintf("/comerciales/%d", id), nil, nil)
	return ok
}

// Customers (clientes)

// Customers lists customers, optionally filtered to one agent. A
// non-positive agentID means no filter.
func (c *Client) Customers(agentID int64) ([]models.Customer, bool) {
	var params map[string]string
	if agentID > 0 {
		params = map[string]string{"comercialId": fmt.Sprint(agentID)}
	}
	items, ok := c.fetchList("/clientes", params)
	if !ok {
		return nil, false
	}
	return lo.Map(items, func(m map[string]interface{}, _ int) models.Customer {
		return models.CustomerFromMap(m)
	}), true
}

func (c *Client) Customer(id int64) (models.Customer, bool) {
	m, ok := c.fetchOne(fmt.Sprintf("/clientes/%d", id))
	if !ok {
		return models.Customer{}, false
	}
	return models.CustomerFromMap(m), true
}

func (c *Client) CreateCustomer(data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPost, "/clientes", data, nil)
	return ok
}

func (c *Client) UpdateCustomer(id int64, data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPut, fmt.Sprintf("/clientes/%d", id), data, nil)
	return ok
}

func (c *Client) DeleteCustomer(id int64) bool {
	_, ok := c.request(resty.MethodDelete, fmt.Sprintf("/clientes/%d", id), nil, nil)
	return ok
}

// Sections (secciones)

func (c *Client) Sections() ([]models.Section, bool) {
	items, ok := c.fetchList("/secciones", nil)
	if !ok {
		return nil, false
	}
	return lo.Map(items, func(m map[string]interface{}, _ int) models.Section {
		return models.SectionFromMap(m)
	}), true
}

func (c *Client) CreateSection(data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPost, "/secciones", data, nil)
	return ok
}

func (c *Client) UpdateSection(id int64, data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPut, fmt.Sprintf("/secciones/%d", id), data, nil)
	return ok
}

func (c *Client) DeleteSection(id int64) bool {
	_, ok := c.request(resty.MethodDelete, fmt.Sprintf("/secciones/%d", id), nil, nil)
	return ok
}

// Products (productos)

// Products lists products, optionally filtered to one section.
func (c *Client) Products(sectionID int64) ([]models.Product, bool) {
	var params map[string]string
	if sectionID > 0 {
		params = map[string]string{"seccionId": fmt.Sprint(sectionID)}
	}
	items, ok := c.fetchList("/productos", params)
	if !ok {
		return nil, false
	}
	return lo.Map(items, func(m map[string]interface{}, _ int) models.Product {
		return models.ProductFromMap(m)
	}), true
}

func (c *Client) CreateProduct(data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPost, "/productos", data, nil)
	return ok
}

func (c *Client) UpdateProduct(id int64, data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPut, fmt.Sprintf("/productos/%d", id), data, nil)
	return ok
}

func (c *Client) DeleteProduct(id int64) bool {
	_, ok := c.request(resty.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, nil)
	return ok
}

// Invoices (facturas)

// Invoices lists invoices, optionally filtered by customer and/or agent.
func (c *Client) Invoices(customerID, agentID int64) ([]models.Invoice, bool) {
	params := map[string]string{}
	if customerID > 0 {
		params["clienteId"] = fmt.Sprint(customerID)
	}
	if agentID > 0 {
		params["comercialId"] = fmt.Sprint(agentID)
	}
	items, ok := c.fetchList("/facturas", params)
	if !ok {
		return nil, false
	}
	return lo.Map(items, func(m map[string]interface{}, _ int) models.Invoice {
		return models.InvoiceFromMap(m)
	}), true
}

func (c *Client) Invoice(id string) (models.Invoice, bool) {
	m, ok := c.fetchOne("/facturas/" + id)
	if !ok {
		return models.Invoice{}, false
	}
	return models.InvoiceFromMap(m), true
}

func (c *Client) CreateInvoice(data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPost, "/facturas", data, nil)
	return ok
}

func (c *Client) UpdateInvoice(id string, data map[string]interface{}) bool {
	_, ok := c.request(resty.MethodPut, "/facturas/"+id, data, nil)
	return ok
}

func (c *Client) DeleteInvoice(id string) bool {
	_, ok := c.request(resty.MethodDelete, "/facturas/"+id, nil, nil)
	return ok
}

// Reports and server statistics

var reportKinds = map[string]bool{
	"clientes": true,
	"facturas": true,
	"completo": true,
}

// StartReport kicks off server-side report generation. The server runs it
// in the background; success only means the request was accepted.
func (c *Client) StartReport(kind string) bool {
	if !reportKinds[kind] {
		return false
	}
	_, ok := c.request(resty.MethodGet, "/informes/"+kind, nil, nil)
	return ok
}

// Statistics returns the backend's request counters, zero-valued when the
// endpoint is unreachable so the dashboard card still renders.
func (c *Client) Statistics() models.APIStatistics {
	data, ok := c.request(resty.MethodGet, "/estadisticas", nil, nil)
	if !ok {
		return models.APIStatistics{}
	}
	m, isMap := data.(map[string]interface{})
	if !isMap {
		return models.APIStatistics{}
	}
	return models.StatisticsFromMap(m)
}

func (c *Client) ExportStatistics(filename string) bool {
	var params map[string]string
	if filename != "" {
		params = map[string]string{"file": filename}
	}
	_, ok := c.request(resty.MethodPost, "/estadisticas", nil, params)
	return ok
}

func (c *Client) ResetStatistics() bool {
	_, ok := c.request(resty.MethodDelete, "/estadisticas", nil, nil)
	return ok
}

// request performs one call and returns the normalized decoded body. The
// ok flag is false on transport errors, HTTP error statuses and undecodable
// bodies; a 204 or empty body is success with nil data.
func (c *Client) request(method, endpoint string, body interface{}, params map[string]string) (interface{}, bool) {
	req := c.http.R()
	if body != nil {
		req.SetBody(body)
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		c.log.Error("APIClient", err, map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
		})
		return nil, false
	}

	if resp.IsError() {
		c.log.Warning("APIClient", "request rejected", map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
			"status":   resp.StatusCode(),
		})
		return nil, false
	}

	if resp.StatusCode() == http.StatusNoContent || len(resp.Body()) == 0 {
		return nil, true
	}

	var decoded interface{}
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		c.log.Error("APIClient", err, map[string]interface{}{
			"method":   method,
			"endpoint": endpoint,
		})
		return nil, false
	}

	return Normalize(decoded), true
}

func (c *Client) fetchList(endpoint string, params map[string]string) ([]map[string]interface{}, bool) {
	data, ok := c.request(resty.MethodGet, endpoint, nil, params)
	if !ok {
		return nil, false
	}

	items, isList := data.([]interface{})
	if !isList {
		if data == nil {
			return []map[string]interface{}{}, true
		}
		return nil, false
	}

	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, isMap := item.(map[string]interface{}); isMap {
			out = append(out, m)
		}
	}
	return out, true
}

// fetchOne tolerates the backend occasionally wrapping single records in a
// one-element list.
func (c *Client) fetchOne(endpoint string) (map[string]interface{}, bool) {
	data, ok := c.request(resty.MethodGet, endpoint, nil, nil)
	if !ok {
		return nil, false
	}

	switch v := data.(type) {
	case map[string]interface{}:
		return v, true
	case []interface{}:
		if len(v) > 0 {
			if m, isMap := v[0].(map[string]interface{}); isMap {
				return m, true
			}
		}
	}
	return nil, false
}
