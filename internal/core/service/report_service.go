package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// reportFilterFields lists, per collection, the fields a report may filter on
// and whether each holds a boolean.
var reportFilterFields = map[domain.ResourceTag]map[string]bool{
	domain.ResourceConsProject: {"status": false, "client": false, "place": false},
	domain.ResourceVehicle:     {"state": false, "type": false, "plate": false, "project": false},
	domain.ResourceUser:        {"role": false, "email": false, "isActive": true},
}

type reportService struct {
	projects ports.DocumentStore[domain.ConsProject]
	vehicles ports.DocumentStore[domain.Vehicle]
	users    ports.DocumentStore[domain.User]
	cache    ports.ReportCache
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewReportService returns a ReportService. cache may be nil, which disables caching.
func NewReportService(
	projects ports.DocumentStore[domain.ConsProject],
	vehicles ports.DocumentStore[domain.Vehicle],
	users ports.DocumentStore[domain.User],
	cache ports.ReportCache,
	ttl time.Duration,
	log zerolog.Logger,
) ports.ReportService {
	return &reportService{
		projects: projects,
		vehicles: vehicles,
		users:    users,
		cache:    cache,
		ttl:      ttl,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Collection(ctx context.Context, requester domain.Identity, in ports.CollectionReportInput) (*domain.CollectionReport, error) {
	tag, ok := domain.ParseResourceTag(in.Collection)
	if _, allowed := reportFilterFields[tag]; !ok || !allowed {
		return nil, domain.NewValidationError("collection must be one of: ConsProject, Vehicle, User")
	}
	if tag == domain.ResourceUser && !requester.Role.AtLeast(domain.RoleAdmin) {
		return nil, fmt.Errorf("user reports require admin: %w", domain.ErrForbidden)
	}
	reportType := in.ReportType
	if reportType == "" {
		reportType = domain.ReportSummary
	}
	if reportType != domain.ReportSummary && reportType != domain.ReportDetailed {
		return nil, domain.NewValidationError("reportType must be one of: summary detailed")
	}
	q, err := reportQuery(tag, in.Filters)
	if err != nil {
		return nil, err
	}

	key := reportCacheKey(tag, reportType, q)
	if cached := s.cached(ctx, key); cached != nil {
		return cached, nil
	}

	var data any
	switch tag {
	case domain.ResourceConsProject:
		data, err = s.projectReport(ctx, q, reportType)
	case domain.ResourceVehicle:
		data, err = s.vehicleReport(ctx, q, reportType)
	case domain.ResourceUser:
		data, err = s.userReport(ctx, q, reportType)
	}
	if err != nil {
		return nil, fmt.Errorf("collection report %s: %w", tag, err)
	}

	report := &domain.CollectionReport{
		Collection:  tag,
		ReportType:  reportType,
		GeneratedAt: s.now(),
		Data:        data,
	}
	s.store(ctx, key, report)
	return report, nil
}

// reportQuery turns user supplied filters into equality conditions, rejecting
// fields outside the collection's whitelist.
func reportQuery(tag domain.ResourceTag, filters map[string]any) (ports.Query, error) {
	allowed := reportFilterFields[tag]
	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	q := ports.Query{}
	var msgs []string
	for _, field := range fields {
		isBool, ok := allowed[field]
		if !ok {
			msgs = append(msgs, fmt.Sprintf("filter %q is not allowed for %s", field, tag))
			continue
		}
		value := filters[field]
		switch v := value.(type) {
		case bool:
			if !isBool {
				msgs = append(msgs, fmt.Sprintf("filter %q must be a string", field))
				continue
			}
		case string:
			if isBool {
				msgs = append(msgs, fmt.Sprintf("filter %q must be a boolean", field))
				continue
			}
			if field == "email" {
				value = normalizeEmail(v)
			}
		default:
			msgs = append(msgs, fmt.Sprintf("filter %q has an unsupported value", field))
			continue
		}
		q = q.Where(field, ports.OpEq, value)
	}
	if len(msgs) > 0 {
		return ports.Query{}, domain.NewValidationError(msgs...)
	}
	return q, nil
}

func reportCacheKey(tag domain.ResourceTag, rt domain.ReportType, q ports.Query) string {
	raw, _ := json.Marshal(struct {
		Tag        domain.ResourceTag
		Type       domain.ReportType
		Conditions []ports.Condition
	}{tag, rt, q.Conditions})
	sum := sha256.Sum256(raw)
	return "report:" + hex.EncodeToString(sum[:])
}

func (s *reportService) cached(ctx context.Context, key string) *domain.CollectionReport {
	if s.cache == nil {
		return nil
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("report cache read failed, bypassing")
		return nil
	}
	if !ok {
		return nil
	}
	var report domain.CollectionReport
	if err := json.Unmarshal(raw, &report); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("report cache entry unreadable")
		return nil
	}
	return &report
}

func (s *reportService) store(ctx context.Context, key string, report *domain.CollectionReport) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

// ── Per-collection summaries ──────────────────────────────────────────────────

type projectSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	ByClient map[string]int `json:"byClient"`
}

func (s *reportService) projectReport(ctx context.Context, q ports.Query, rt domain.ReportType) (any, error) {
	projects, err := s.projects.Find(ctx, q.Newest())
	if err != nil {
		return nil, err
	}
	sum := projectSummary{Total: len(projects), ByStatus: map[string]int{}, ByClient: map[string]int{}}
	for _, st := range domain.ConsProjectStatuses {
		sum.ByStatus[string(st)] = 0
	}
	for _, p := range projects {
		sum.ByStatus[string(p.Status)]++
		sum.ByClient[p.Client]++
	}
	if rt == domain.ReportDetailed {
		if projects == nil {
			projects = []domain.ConsProject{}
		}
		return map[string]any{"summary": sum, "projects": projects}, nil
	}
	return sum, nil
}

type vehicleSummary struct {
	Total          int            `json:"total"`
	ByState        map[string]int `json:"byState"`
	ByType         map[string]int `json:"byType"`
	WithProject    int            `json:"withProject"`
	WithoutProject int            `json:"withoutProject"`
}

func (s *reportService) vehicleReport(ctx context.Context, q ports.Query, rt domain.ReportType) (any, error) {
	vehicles, err := s.vehicles.Find(ctx, q.Newest())
	if err != nil {
		return nil, err
	}
	sum := vehicleSummary{Total: len(vehicles), ByState: map[string]int{}, ByType: map[string]int{}}
	for _, st := range domain.VehicleStates {
		sum.ByState[string(st)] = 0
	}
	for _, v := range vehicles {
		sum.ByState[string(v.State)]++
		sum.ByType[v.Type]++
		if v.ProjectID != "" {
			sum.WithProject++
		} else {
			sum.WithoutProject++
		}
	}
	if rt == domain.ReportDetailed {
		type row struct {
			ID        string    `json:"_id"`
			Plate     string    `json:"plate"`
			Type      string    `json:"type"`
			State     string    `json:"state"`
			Project   *string   `json:"project"`
			CreatedAt time.Time `json:"createdAt"`
		}
		rows := make([]row, 0, len(vehicles))
		for _, v := range vehicles {
			r := row{ID: v.ID, Plate: v.Plate, Type: v.Type, State: string(v.State), CreatedAt: v.CreatedAt}
			if v.ProjectID != "" {
				pid := v.ProjectID
				r.Project = &pid
			}
			rows = append(rows, r)
		}
		return map[string]any{"summary": sum, "vehicles": rows}, nil
	}
	return sum, nil
}

type userSummary struct {
	Total    int            `json:"total"`
	ByRole   map[string]int `json:"byRole"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
}

func (s *reportService) userReport(ctx context.Context, q ports.Query, rt domain.ReportType) (any, error) {
	users, err := s.users.Find(ctx, q.Newest())
	if err != nil {
		return nil, err
	}
	sum := userSummary{Total: len(users), ByRole: map[string]int{
		string(domain.RoleAdmin): 0, string(domain.RoleAnalyst): 0, string(domain.RoleVisitor): 0,
	}}
	for _, u := range users {
		sum.ByRole[string(u.Role)]++
		if u.IsActive {
			sum.Active++
		} else {
			sum.Inactive++
		}
	}
	if rt == domain.ReportDetailed {
		if users == nil {
			users = []domain.User{}
		}
		return map[string]any{"summary": sum, "users": users}, nil
	}
	return sum, nil
}
