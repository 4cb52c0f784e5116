package application

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrRecognitionFailed = errors.New("failed to recognize doodle")

// Recognizer is the external doodle-classification oracle: one image in,
// one raw text answer out.
type Recognizer interface {
	Classify(ctx context.Context, imageBase64 string) (string, error)
}

type RecognizeService struct {
	Oracle Recognizer
	Logger *logrus.Logger
}

func NewRecognizeService(oracle Recognizer, logger *logrus.Logger) *RecognizeService {
	return &RecognizeService{Oracle: oracle, Logger: logger}
}

// Recognize strips any data-URL prefix, validates the base64 payload and
// reduces the oracle's answer to a single lowercase word.
func (s *RecognizeService) Recognize(ctx context.Context, image string) (string, error) {
	if i := strings.Index(image, "base64,"); i >= 0 {
		image = image[i+len("base64,"):]
	}
	if _, err := base64.StdEncoding.DecodeString(image); err != nil {
		return "", ErrRecognitionFailed
	}

	raw, err := s.Oracle.Classify(ctx, image)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("doodle recognition failed")
		}
		return "", ErrRecognitionFailed
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", ErrRecognitionFailed
	}
	word := strings.Trim(fields[0], ".,!?")
	return strings.ToLower(word), nil
}
