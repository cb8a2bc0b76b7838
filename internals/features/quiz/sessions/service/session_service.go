package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	certService "quizku_backend/internals/features/certificates/service"
	"quizku_backend/internals/features/notifications"
	"quizku_backend/internals/features/quiz/grading"
	qdto "quizku_backend/internals/features/quiz/questions/dto"
	qmodel "quizku_backend/internals/features/quiz/questions/model"
	qservice "quizku_backend/internals/features/quiz/questions/service"
	resultModel "quizku_backend/internals/features/quiz/results/model"
	resultRepo "quizku_backend/internals/features/quiz/results/repository"
	"quizku_backend/internals/features/quiz/sessions/dto"
	authRepo "quizku_backend/internals/features/users/auth/repository"
	userModel "quizku_backend/internals/features/users/user/model"
	"quizku_backend/internals/helpers/apperr"
	helperAuth "quizku_backend/internals/helpers/auth"
	"quizku_backend/internals/logger"
	"quizku_backend/internals/middlewares/metrics"
)

type CertificateIssuer interface {
	GenerateCertificate(ctx context.Context, d certService.CertificateData) (certService.Artifact, error)
}

type Recorder interface {
	ObserveSubmission(trigger string, percentage float64)
	ObserveBlocked()
}

type Service struct {
	DB           *gorm.DB
	Questions    *qservice.Service
	Notifier     *notifications.Notifier
	Certificates CertificateIssuer
	Metrics      Recorder
	issued       *issuedSamples
	log          *logrus.Entry
}

func New(db *gorm.DB, questions *qservice.Service, n *notifications.Notifier, certs CertificateIssuer, rec Recorder) *Service {
	return &Service{
		DB:           db,
		Questions:    questions,
		Notifier:     n,
		Certificates: certs,
		Metrics:      rec,
		issued:       newIssuedSamples(questions.TimeLimit + IssuedGrace),
		log:          logger.L().WithField("component", "quiz_session"),
	}
}

/* =========================================================
   Account gate
========================================================= */

// activeUser loads the caller and rejects blocked accounts before anything
// else happens.
func (s *Service) activeUser(ctx context.Context, id helperAuth.Identity, action string) (*userModel.UserModel, error) {
	user, err := authRepo.FindUserByID(s.DB.WithContext(ctx), id.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user.IsBlocked {
		if s.Metrics != nil {
			s.Metrics.ObserveBlocked()
		}
		s.Notifier.NotifyBlockedAttempt(ctx, notifications.Recipient{Username: user.UserName, Email: user.Email})
		return nil, apperr.Forbidden("Your account is blocked. You cannot " + action + ".")
	}
	return user, nil
}

/* =========================================================
   Fetch
========================================================= */

// FetchSample returns a fresh random question set for language and remembers
// it as the caller's current sample. An empty list means no quiz is
// available for that language.
func (s *Service) FetchSample(ctx context.Context, id helperAuth.Identity, language string) ([]qdto.PublicQuestion, error) {
	user, err := s.activeUser(ctx, id, "take quizzes")
	if err != nil {
		return nil, err
	}
	sample, err := s.Questions.SampleQuestions(ctx, language)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(sample.Questions))
	for _, q := range sample.Questions {
		ids = append(ids, q.ID)
	}
	s.issued.put(user.ID, qmodel.NormalizeLanguage(language), ids)
	return sample.Public(), nil
}

/* =========================================================
   Submit
========================================================= */

type parsedSubmission struct {
	answers  map[uuid.UUID]int
	graded   []uuid.UUID
	explicit bool // graded came from questionIds
	language string
	forced   bool
	trigger  string
}

func parseSubmission(req dto.SubmitRequest) (parsedSubmission, error) {
	var v apperr.Violations
	out := parsedSubmission{answers: make(map[uuid.UUID]int, len(req.Answers))}

	if req.Answers == nil {
		v.Add("answers", "is required")
	}
	keys := make([]string, 0, len(req.Answers))
	for k := range req.Answers {
		keys = append(keys, k)
	}
	// deterministic graded order when no questionIds were sent
	sort.Strings(keys)

	for _, k := range keys {
		qid, err := uuid.Parse(strings.TrimSpace(k))
		if err != nil {
			v.Addf("answers", "%q is not a valid question id", k)
			continue
		}
		opt, err := strconv.Atoi(strings.TrimSpace(string(req.Answers[k])))
		if err != nil {
			v.Addf("answers", "answer for %s must be an integer option index", k)
			continue
		}
		out.answers[qid] = opt
		if len(req.QuestionIDs) == 0 {
			out.graded = append(out.graded, qid)
		}
	}

	seen := make(map[uuid.UUID]bool, len(req.QuestionIDs))
	for _, raw := range req.QuestionIDs {
		qid, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			v.Addf("questionIds", "%q is not a valid question id", raw)
			continue
		}
		if !seen[qid] {
			seen[qid] = true
			out.graded = append(out.graded, qid)
		}
	}

	out.explicit = len(req.QuestionIDs) > 0
	out.language = qmodel.NormalizeLanguage(req.Language)
	out.forced = req.Forced
	switch {
	case req.Forced:
		out.trigger = metrics.TriggerIntegrity
	case req.Trigger == metrics.TriggerTimeout:
		out.trigger = metrics.TriggerTimeout
	case req.Trigger == "" || req.Trigger == metrics.TriggerUser:
		out.trigger = metrics.TriggerUser
	default:
		v.Add("trigger", "must be one of user, timeout")
	}

	return out, v.Err()
}

// orderedQuestions keeps the requested order and drops unknown ids.
func orderedQuestions(ids []uuid.UUID, found []qmodel.QuestionModel) []qmodel.QuestionModel {
	byID := make(map[uuid.UUID]qmodel.QuestionModel, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	out := make([]qmodel.QuestionModel, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out
}

// Submit grades one attempt and records it. Notification and certificate
// failures never fail the submission.
func (s *Service) Submit(ctx context.Context, id helperAuth.Identity, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	user, err := s.activeUser(ctx, id, "submit quiz results")
	if err != nil {
		return nil, err
	}

	in, err := parseSubmission(req)
	if err != nil {
		return nil, err
	}
	if !in.explicit {
		if ids, ok := s.issued.peek(user.ID, in.language); ok {
			in.graded = ids
		}
	}

	found, err := s.Questions.FindByIDs(ctx, in.graded)
	if err != nil {
		return nil, err
	}
	questions := orderedQuestions(in.graded, found)
	if len(questions) == 0 {
		// nothing gradable: 0%, and no result row since totals must be positive
		s.log.WithField("user_id", user.ID).Warn("submission without valid questions")
		return &dto.SubmitResponse{Forced: in.forced}, nil
	}
	if in.language == "" {
		in.language = questions[0].Language
	}

	graded := grading.Grade(questions, in.answers)

	result := &resultModel.QuizResultModel{
		UserID:         user.ID,
		Score:          graded.Score,
		TotalQuestions: graded.Total,
		Language:       in.language,
		Forced:         in.forced,
	}
	if err := resultRepo.Append(s.DB.WithContext(ctx), result); err != nil {
		return nil, apperr.Internal("failed to save quiz result", err)
	}
	s.issued.drop(user.ID)
	if s.Metrics != nil {
		s.Metrics.ObserveSubmission(in.trigger, graded.Percentage)
	}

	entry := s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"language": in.language,
		"score":    graded.Score,
		"total":    graded.Total,
		"trigger":  in.trigger,
	})
	entry.Info("quiz graded")

	s.Notifier.NotifyResult(ctx, notifications.ResultNotice{
		Recipient: notifications.Recipient{Username: user.UserName, Email: user.Email},
		Score:     graded.Score,
		Total:     graded.Total,
		Language:  in.language,
		Forced:    in.forced,
	})

	out := &dto.SubmitResponse{
		ResultID:       &result.ID,
		Score:          graded.Score,
		TotalQuestions: graded.Total,
		Percentage:     graded.Percentage,
		Forced:         in.forced,
	}
	if s.Certificates != nil {
		art, err := s.Certificates.GenerateCertificate(ctx, certService.CertificateData{
			Username: user.UserName,
			Score:    graded.Score,
			Total:    graded.Total,
			Language: in.language,
			Forced:   in.forced,
			IssuedAt: result.CreatedAt,
		})
		if err != nil {
			entry.WithError(err).Error("certificate generation failed")
		} else {
			out.Certificate = &dto.CertificateRef{FilePath: art.FilePath, FileName: art.FileName}
		}
	}
	return out, nil
}

/* =========================================================
   History
========================================================= */

func (s *Service) History(ctx context.Context, id helperAuth.Identity) ([]resultModel.QuizResultModel, error) {
	rows, err := resultRepo.ListByUser(s.DB.WithContext(ctx), id.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load history", err)
	}
	if rows == nil {
		rows = []resultModel.QuizResultModel{}
	}
	return rows, nil
}
