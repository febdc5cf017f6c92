package shrinker

import (
	"context"
	"math"

	db "github.com/zhukovvlad/matcher-go/cmd/internal/db/sqlc"
	"github.com/zhukovvlad/matcher-go/cmd/internal/util"
)

// persist записывает результаты позиции одной свежей транзакцией:
// мэтчи, пер-атрибутные совпадения и инкремент счетчика обработанных
// позиций тендера. При ошибке транзакция откатывается целиком.
func (m *PositionMatcher) persist(
	ctx context.Context,
	tenderID int64,
	position db.TendersPosition,
	scored []*CandidateScore,
	maxScore int,
) error {
	return m.store.ExecTx(ctx, func(qtx *db.Queries) error {
		for _, score := range scored {
			_, err := qtx.CreateTenderMatch(ctx, db.CreateTenderMatchParams{
				TenderPositionID:     position.ID,
				ProductID:            score.Candidate.Source.ID,
				MatchScore:           float64(score.Points),
				MaxMatchScore:        float64(maxScore),
				PercentageMatchScore: percentage(score.Points, maxScore),
			})
			if err != nil {
				return err
			}

			for _, matched := range score.Matched {
				err := qtx.CreateTenderPositionAttributeMatch(ctx, db.CreateTenderPositionAttributeMatchParams{
					TenderID:          tenderID,
					TenderPositionID:  position.ID,
					ProductMongoID:    score.Candidate.Source.ID,
					PositionAttrID:    matched.PositionAttrID,
					PositionAttrName:  matched.PositionAttrName,
					PositionAttrValue: matched.PositionAttrValue,
					PositionAttrUnit:  util.NullableString(util.NilIfEmpty(matched.PositionAttrUnit)),
					ProductAttrName:   matched.ProductAttrName,
					ProductAttrValue:  matched.ProductAttrValue,
				})
				if err != nil {
					return err
				}
			}
		}

		return qtx.IncrementProcessedPositions(ctx, tenderID)
	})
}

// percentage — доля набранных очков в процентах, округленная до одного
// знака после запятой.
func percentage(points, maxScore int) float64 {
	if maxScore == 0 {
		return 0
	}
	return math.Round(float64(points)/float64(maxScore)*1000) / 10
}
