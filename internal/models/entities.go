package models

// Invoice status values as the backend emits them.
const (
	StatusPaid      = "pagada"
	StatusPending   = "pendiente"
	StatusCancelled = "cancelada"
	StatusUnknown   = "desconocido"
)

// Customer is a backend "cliente" record. AgentID is zero when the
// customer has no assigned agent.
type Customer struct {
	ID      int64
	Name    string
	Surname string
	Age     int
	Email   string
	Phone   string
	Address string
	AgentID int64
}

// Agent is a backend "comercial" record.
type Agent struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	Role     string
	Username string
}

type Product struct {
	ID             int64
	Name           string
	BasePrice      float64
	AvailableSlots int
	SectionID      int64
}

type Section struct {
	ID   int64
	Name string
}

// Invoice is a backend "factura" record. IssueDate keeps the raw
// normalized value because the backend emits three different date
// encodings; ParseIssueDate resolves it on demand.
type Invoice struct {
	ID         string
	CustomerID int64
	AgentID    int64
	ProductID  int64
	IssueDate  interface{}
	Status     string
	Total      float64
	Subtotal   float64
	TaxTotal   float64
}

// APIStatistics mirrors the backend's request counters. A zero value is
// the documented fallback when the statistics endpoint is unreachable.
type APIStatistics struct {
	TotalRequests       int64
	SuccessfulRequests  int64
	FailedRequests      int64
	AverageResponseTime float64
}
