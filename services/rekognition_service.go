package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/JaguarsCodehub/food-calorie/config"
	"github.com/JaguarsCodehub/food-calorie/models"
)

// DetectLabelsAPI is the slice of the Rekognition client we call.
type DetectLabelsAPI interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

type RekognitionService struct {
	client        DetectLabelsAPI
	maxLabels     int32
	minConfidence float32
}

func NewRekognitionService(client DetectLabelsAPI, cfg config.RekognitionConfig) *RekognitionService {
	return &RekognitionService{
		client:        client,
		maxLabels:     cfg.MaxLabels,
		minConfidence: cfg.MinConfidence,
	}
}

// DetectLabels returns every label Rekognition reports for the raw image bytes.
func (r *RekognitionService) DetectLabels(ctx context.Context, image []byte) ([]models.DetectedLabel, error) {
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(r.maxLabels),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition detect labels: %w", err)
	}

	labels := make([]models.DetectedLabel, 0, len(out.Labels))
	for _, l := range out.Labels {
		dl := models.DetectedLabel{
			Name:       aws.ToString(l.Name),
			Confidence: widenConfidence(aws.ToFloat32(l.Confidence)),
		}
		for _, c := range l.Categories {
			if c.Name != nil {
				dl.Categories = append(dl.Categories, *c.Name)
			}
		}
		labels = append(labels, dl)
	}
	return labels, nil
}

// widenConfidence converts via the shortest decimal form so 95.3 stays 95.3
// instead of 95.30000305175781.
func widenConfidence(c float32) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(c), 'f', -1, 32), 64)
	return f
}
