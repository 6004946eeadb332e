package usecase

import (
	"context"
	"errors"
	"io"

	"outpatient-planner/config"
	"outpatient-planner/internal/converter"
	"outpatient-planner/internal/delivery/dto"
	"outpatient-planner/internal/domain/entity"
	"outpatient-planner/internal/domain/repository"
	"outpatient-planner/internal/exporter"
	"outpatient-planner/internal/parser"
	"outpatient-planner/internal/planning"
	"outpatient-planner/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const previewRows = 5

// Feature names reported when a page leaves something out.
const (
	FeaturePrediction               = "prediction"
	FeatureCapacityPlan             = "capacity_plan"
	FeatureReferralTrend            = "referral_trend"
	FeatureAppointmentsVsDischarges = "appointments_vs_discharges"
	FeatureSeasonality              = "seasonality"
)

var (
	ErrUnknownPage = errors.New("unknown page")
)

type PlanningUsecase interface {
	Upload(ctx context.Context, sessionID uuid.UUID, filename string, r io.Reader) (*dto.UploadResponse, error)
	GetSpecialties(ctx context.Context, sessionID uuid.UUID) (*dto.SpecialtyListResponse, error)
	Predict(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*dto.PredictionResponse, error)
	Plan(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*dto.PlanResponse, error)
	Export(ctx context.Context, sessionID uuid.UUID, q *dto.ExportQuery) (*exporter.File, error)
	Visualize(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*dto.VisualizationResponse, error)
	Page(ctx context.Context, sessionID uuid.UUID, page entity.Page, q *dto.PlanningQuery) (dto.PageView, error)
}

type planningUsecase struct {
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	auditService service.AuditService
	selector     *selector
}

func NewPlanningUsecase(
	log *logrus.Logger,
	cfg config.PlanningConfig,
	sessionRepo repository.SessionRepository,
	auditService service.AuditService,
) PlanningUsecase {
	return &planningUsecase{
		log:          log,
		sessionRepo:  sessionRepo,
		auditService: auditService,
		selector:     &selector{sessionRepo: sessionRepo, defaults: cfg},
	}
}

func (u *planningUsecase) Upload(ctx context.Context, sessionID uuid.UUID, filename string, r io.Reader) (*dto.UploadResponse, error) {
	table, err := parser.Parse(filename, r)
	if err != nil {
		u.log.Warnf("Failed to parse upload %q: %+v", filename, err)
		return nil, err
	}

	if err := u.sessionRepo.SaveTable(ctx, sessionID, table); err != nil {
		if errors.Is(err, repository.ErrSessionExpired) {
			return nil, ErrSessionNotFound
		}
		u.log.Warnf("Failed to store activity table: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"session_id": sessionID.String(),
		"file_name":  filename,
		"rows":       table.Len(),
	}).Info("Activity data uploaded")

	u.auditService.Record(ctx, sessionID, entity.AuditActionActivityUpload, entity.JSON{
		"file_name": filename,
		"rows":      table.Len(),
		"columns":   table.Columns,
	})

	return &dto.UploadResponse{
		FileName:    filename,
		Rows:        table.Len(),
		Columns:     table.Columns,
		Specialties: planning.Specialties(table),
		Preview:     converter.ActivityRecordsToResponses(table.Head(previewRows)),
	}, nil
}

func (u *planningUsecase) GetSpecialties(ctx context.Context, sessionID uuid.UUID) (*dto.SpecialtyListResponse, error) {
	table, err := u.sessionRepo.FindTable(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to load activity table: %+v", err)
		return nil, err
	}
	if table == nil {
		return nil, ErrNoActivityData
	}

	def, _ := planning.DefaultSpecialty(table)
	return &dto.SpecialtyListResponse{
		Specialties: planning.Specialties(table),
		Default:     def,
	}, nil
}

func (u *planningUsecase) Predict(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*dto.PredictionResponse, error) {
	sel, err := u.selector.load(ctx, sessionID, q)
	if err != nil {
		return nil, err
	}
	return u.predict(sel)
}

func (u *planningUsecase) predict(sel *selection) (*dto.PredictionResponse, error) {
	prediction, err := planning.PredictReferrals(sel.filtered, sel.growth)
	if err != nil {
		return nil, err
	}
	return converter.PredictionToResponse(sel.specialty, sel.filtered, prediction, previewRows), nil
}

func (u *planningUsecase) Plan(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*dto.PlanResponse, error) {
	sel, err := u.selector.load(ctx, sessionID, q)
	if err != nil {
		return nil, err
	}
	resp, _, err := u.plan(sel)
	return resp, err
}

func (u *planningUsecase) plan(sel *selection) (*dto.PlanResponse, *entity.ProjectionSummary, error) {
	prediction, err := planning.PredictReferrals(sel.filtered, sel.growth)
	if err != nil {
		return nil, nil, err
	}

	summary, err := planning.PlanCapacity(sel.filtered, prediction, sel.backlog)
	if err != nil {
		return nil, nil, err
	}

	predictionResp := converter.PredictionToResponse(sel.specialty, sel.filtered, prediction, previewRows)
	return converter.ProjectionSummaryToResponse(predictionResp, summary), summary, nil
}

func (u *planningUsecase) Export(ctx context.Context, sessionID uuid.UUID, q *dto.ExportQuery) (*exporter.File, error) {
	sel, err := u.selector.load(ctx, sessionID, &q.PlanningQuery)
	if err != nil {
		return nil, err
	}

	_, summary, err := u.plan(sel)
	if err != nil {
		return nil, err
	}

	var file *exporter.File
	switch q.Format {
	case string(parser.FormatXLSX):
		file, err = exporter.SummaryWorkbook(summary)
	default:
		file, err = exporter.SummaryCSV(summary)
	}
	if err != nil {
		u.log.Warnf("Failed to export projection summary: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, sessionID, entity.AuditActionSummaryExport, entity.JSON{
		"format":         q.Format,
		"specialty":      sel.specialty,
		"growth_rate":    int(sel.growth),
		"backlog_target": int(sel.backlog),
	})

	return file, nil
}

func (u *planningUsecase) Visualize(ctx context.Context, sessionID uuid.UUID, q *dto.PlanningQuery) (*dto.VisualizationResponse, error) {
	sel, err := u.selector.load(ctx, sessionID, q)
	if err != nil {
		return nil, err
	}
	return u.visualize(sel), nil
}

func (u *planningUsecase) visualize(sel *selection) *dto.VisualizationResponse {
	views := planning.BuildViews(sel.filtered)
	resp := converter.ActivityViewsToResponse(sel.specialty, views)

	for _, req := range []struct {
		feature string
		columns []string
	}{
		{FeatureReferralTrend, planning.ReferralTrendColumns},
		{FeatureAppointmentsVsDischarges, planning.AppointmentsVsDischargesColumns},
		{FeatureSeasonality, planning.SeasonalityColumns},
	} {
		if skipped, ok := skippedFeature(req.feature, sel.filtered.RequireColumns(req.columns...)); ok {
			resp.Skipped = append(resp.Skipped, skipped)
		}
	}

	return resp
}

// Page composes one dashboard page. Features whose columns are missing are
// listed as skipped instead of failing the page.
func (u *planningUsecase) Page(ctx context.Context, sessionID uuid.UUID, page entity.Page, q *dto.PlanningQuery) (dto.PageView, error) {
	if !page.Valid() {
		return nil, ErrUnknownPage
	}

	sel, err := u.selector.load(ctx, sessionID, q)
	if err != nil {
		return nil, err
	}

	header := dto.PageHeader{
		Name:        page,
		Title:       page.Title(),
		Specialty:   sel.specialty,
		Specialties: sel.specialties,
		Skipped:     []dto.SkippedFeature{},
	}

	switch page {
	case entity.PageUploadPredict:
		view := &dto.PredictPageView{PageHeader: header}
		view.Prediction, err = u.predict(sel)
		if err = u.skipOrFail(&view.PageHeader, FeaturePrediction, err); err != nil {
			return nil, err
		}
		return view, nil

	case entity.PagePlanActivity:
		view := &dto.PlanPageView{PageHeader: header}
		view.Prediction, err = u.predict(sel)
		if err != nil {
			if err = u.skipOrFail(&view.PageHeader, FeaturePrediction, err); err != nil {
				return nil, err
			}
			view.Skipped = append(view.Skipped, dto.SkippedFeature{
				Feature:       FeatureCapacityPlan,
				MissingColumn: entity.ColumnReferrals,
			})
			return view, nil
		}
		view.Plan, _, err = u.plan(sel)
		if err = u.skipOrFail(&view.PageHeader, FeatureCapacityPlan, err); err != nil {
			return nil, err
		}
		return view, nil

	default:
		view := &dto.VisualizePageView{PageHeader: header}
		view.Visualization = u.visualize(sel)
		view.Skipped = append(view.Skipped, view.Visualization.Skipped...)
		return view, nil
	}
}

func (u *planningUsecase) skipOrFail(header *dto.PageHeader, feature string, err error) error {
	if err == nil {
		return nil
	}
	skipped, ok := skippedFeature(feature, err)
	if !ok {
		return err
	}
	header.Skipped = append(header.Skipped, skipped)
	return nil
}
