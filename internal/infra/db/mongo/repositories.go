package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gitecal/internal/domain/pricing"
	"gitecal/internal/domain/shared/dates"
	"gitecal/internal/domain/shared/money"
)

// Days persist as YYYY-MM-DD strings: lexical order matches calendar order,
// so range filters stay plain $gte/$lt comparisons.

type OverrideRepository struct {
	col *mongo.Collection
}

func NewOverrideRepository(db *mongo.Database) *OverrideRepository {
	return &OverrideRepository{col: db.Collection("day_overrides")}
}

func (r *OverrideRepository) Overrides(ctx context.Context, window dates.Range) ([]pricing.DayOverride, error) {
	filter := bson.M{"date": bson.M{"$gte": window.From.String(), "$lt": window.To.String()}}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []overrideDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	overrides := make([]pricing.DayOverride, 0, len(docs))
	for _, doc := range docs {
		o, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return pricing.DedupeOverrides(overrides), nil
}

func (r *OverrideRepository) Upsert(ctx context.Context, overrides []pricing.DayOverride) error {
	for _, o := range overrides {
		doc := newOverrideDocument(o)
		filter := bson.M{"date": doc.Date}
		update := bson.M{"$set": doc}
		if _, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

func (r *OverrideRepository) Delete(ctx context.Context, days []dates.Day) error {
	if len(days) == 0 {
		return nil
	}
	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, d.String())
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"date": bson.M{"$in": keys}})
	return err
}

type overrideDocument struct {
	ID             string `bson:"_id"`
	Date           string `bson:"date"`
	PricePerNight  *int64 `bson:"price_per_night,omitempty"`
	MinimumNights  *int   `bson:"minimum_nights,omitempty"`
	IsAvailable    bool   `bson:"is_available"`
	BlockReason    string `bson:"block_reason,omitempty"`
	Comment        string `bson:"comment,omitempty"`
	HighlightColor string `bson:"highlight_color,omitempty"`
	UpdatedAt      int64  `bson:"updated_at"`
}

func newOverrideDocument(o pricing.DayOverride) overrideDocument {
	doc := overrideDocument{
		ID:             o.ID,
		Date:           o.Date.String(),
		MinimumNights:  o.MinimumNights,
		IsAvailable:    o.IsAvailable,
		BlockReason:    o.BlockReason,
		Comment:        o.Comment,
		HighlightColor: o.HighlightColor,
		UpdatedAt:      o.UpdatedAt.UnixMilli(),
	}
	if o.PricePerNight != nil {
		amount := o.PricePerNight.Amount
		doc.PricePerNight = &amount
	}
	return doc
}

func (d overrideDocument) toDomain() (pricing.DayOverride, error) {
	date, err := dates.ParseDay(d.Date)
	if err != nil {
		return pricing.DayOverride{}, err
	}
	o := pricing.DayOverride{
		ID:             d.ID,
		Date:           date,
		MinimumNights:  d.MinimumNights,
		IsAvailable:    d.IsAvailable,
		BlockReason:    d.BlockReason,
		Comment:        d.Comment,
		HighlightColor: d.HighlightColor,
		UpdatedAt:      time.UnixMilli(d.UpdatedAt).UTC(),
	}
	if d.PricePerNight != nil {
		price := money.EUR(*d.PricePerNight)
		o.PricePerNight = &price
	}
	return o, nil
}

type PeriodRepository struct {
	col *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) *PeriodRepository {
	return &PeriodRepository{col: db.Collection("pricing_periods")}
}

func (r *PeriodRepository) Periods(ctx context.Context, window dates.Range) ([]pricing.PricingPeriod, error) {
	// inclusive span intersects [From, To): end >= From and start < To
	filter := bson.M{
		"end":   bson.M{"$gte": window.From.String()},
		"start": bson.M{"$lt": window.To.String()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []periodDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	periods := make([]pricing.PricingPeriod, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}

type periodDocument struct {
	ID            string `bson:"_id"`
	Name          string `bson:"name"`
	Start         string `bson:"start"`
	End           string `bson:"end"`
	PricePerNight int64  `bson:"price_per_night"`
	MinimumNights int    `bson:"minimum_nights"`
	IsAvailable   bool   `bson:"is_available"`
	IsActive      bool   `bson:"is_active"`
}

func (d periodDocument) toDomain() (pricing.PricingPeriod, error) {
	start, err := dates.ParseDay(d.Start)
	if err != nil {
		return pricing.PricingPeriod{}, err
	}
	end, err := dates.ParseDay(d.End)
	if err != nil {
		return pricing.PricingPeriod{}, err
	}
	return pricing.PricingPeriod{
		ID:            d.ID,
		Name:          d.Name,
		Start:         start,
		End:           end,
		PricePerNight: money.EUR(d.PricePerNight),
		MinimumNights: d.MinimumNights,
		IsAvailable:   d.IsAvailable,
		IsActive:      d.IsActive,
	}, nil
}

type BlockedRangeRepository struct {
	col *mongo.Collection
}

func NewBlockedRangeRepository(db *mongo.Database) *BlockedRangeRepository {
	return &BlockedRangeRepository{col: db.Collection("blocked_ranges")}
}

func (r *BlockedRangeRepository) BlockedRanges(ctx context.Context, window dates.Range) ([]pricing.BlockedRange, error) {
	filter := bson.M{
		"end":   bson.M{"$gte": window.From.String()},
		"start": bson.M{"$lt": window.To.String()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []blockedRangeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ranges := make([]pricing.BlockedRange, 0, len(docs))
	for _, doc := range docs {
		b, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, b)
	}
	return ranges, nil
}

type blockedRangeDocument struct {
	ID       string `bson:"_id"`
	Start    string `bson:"start"`
	End      string `bson:"end"`
	Reason   string `bson:"reason,omitempty"`
	Comment  string `bson:"comment,omitempty"`
	IsActive bool   `bson:"is_active"`
}

func (d blockedRangeDocument) toDomain() (pricing.BlockedRange, error) {
	start, err := dates.ParseDay(d.Start)
	if err != nil {
		return pricing.BlockedRange{}, err
	}
	end, err := dates.ParseDay(d.End)
	if err != nil {
		return pricing.BlockedRange{}, err
	}
	return pricing.BlockedRange{
		ID:       d.ID,
		Start:    start,
		End:      end,
		Reason:   d.Reason,
		Comment:  d.Comment,
		IsActive: d.IsActive,
	}, nil
}

type RulesRepository struct {
	col *mongo.Collection
}

func NewRulesRepository(db *mongo.Database) *RulesRepository {
	return &RulesRepository{col: db.Collection("booking_rules")}
}

// Rules loads the singleton rules document, falling back to the property
// defaults when none has been written yet.
func (r *RulesRepository) Rules(ctx context.Context) (pricing.Rules, error) {
	var doc rulesDocument
	err := r.col.FindOne(ctx, bson.M{"_id": "default"}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pricing.DefaultRules(), nil
	}
	if err != nil {
		return pricing.Rules{}, err
	}
	return doc.toDomain(), nil
}

type rulesDocument struct {
	ID                     string `bson:"_id"`
	DefaultPricePerNight   int64  `bson:"default_price_per_night"`
	DefaultMinimumNights   int    `bson:"default_minimum_nights"`
	MaximumGuests          int    `bson:"maximum_guests"`
	DepositPercentage      int64  `bson:"deposit_percentage"`
	SecurityDeposit        int64  `bson:"security_deposit"`
	TouristTaxPerGuestCent int64  `bson:"tourist_tax_per_guest_cent"`
	CheckInTime            string `bson:"check_in_time"`
	CheckOutTime           string `bson:"check_out_time"`
}

func (d rulesDocument) toDomain() pricing.Rules {
	return pricing.Rules{
		DefaultPricePerNight:   money.EUR(d.DefaultPricePerNight),
		DefaultMinimumNights:   d.DefaultMinimumNights,
		MaximumGuests:          d.MaximumGuests,
		DepositPercentage:      d.DepositPercentage,
		SecurityDeposit:        money.EUR(d.SecurityDeposit),
		TouristTaxPerGuestCent: d.TouristTaxPerGuestCent,
		CheckInTime:            d.CheckInTime,
		CheckOutTime:           d.CheckOutTime,
	}
}

var (
	_ pricing.OverrideRepository     = (*OverrideRepository)(nil)
	_ pricing.PeriodRepository       = (*PeriodRepository)(nil)
	_ pricing.BlockedRangeRepository = (*BlockedRangeRepository)(nil)
	_ pricing.RulesRepository        = (*RulesRepository)(nil)
)
