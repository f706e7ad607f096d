// Package container provides dependency injection for the emi-tracker
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/emi-tracker/internal/batch"
	"fjacquet/emi-tracker/internal/common"
	"fjacquet/emi-tracker/internal/config"
	"fjacquet/emi-tracker/internal/emi"
	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/report"
	"fjacquet/emi-tracker/internal/stmtparser"
	"fjacquet/emi-tracker/internal/store"
	"fjacquet/emi-tracker/internal/textsource"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	extractor textsource.Extractor
	parser    *stmtparser.Parser
	processor *batch.Processor
	store     *store.ExtractionStore
	engine    *emi.Engine
	reporter  *report.ReportGenerator
}

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger    logging.Logger
	extractor textsource.Extractor
}

// WithLogger replaces the logrus adapter built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithExtractor replaces the file/PDF text extractor.
func WithExtractor(extractor textsource.Extractor) Option {
	return func(o *options) { o.extractor = extractor }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	extractor := o.extractor
	if extractor == nil {
		extractor = textsource.NewFileExtractor()
	}

	common.SetDelimiter(cfg.DelimiterRune())

	p := stmtparser.NewParser(logger)
	engine := emi.NewEngine(emi.Options{
		MinGapDays:          cfg.EMI.MinGapDays,
		PriorityBurdenScale: decimal.NewFromFloat(cfg.EMI.PriorityBurdenScale),
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.F("min_gap_days", cfg.EMI.MinGapDays),
		logging.F("workers", cfg.Parser.Workers),
		logging.F(logging.FieldInputFile, cfg.Input.ExtractionsFile))

	return &Container{
		logger:    logger,
		config:    cfg,
		extractor: extractor,
		parser:    p,
		processor: batch.NewProcessor(extractor, p, cfg.Parser.Workers, logger),
		store:     store.NewExtractionStore(cfg.Input.ExtractionsFile, logger),
		engine:    engine,
		reporter:  report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetExtractor returns the statement text extractor.
func (c *Container) GetExtractor() textsource.Extractor {
	return c.extractor
}

// GetParser returns the statement line parser.
func (c *Container) GetParser() *stmtparser.Parser {
	return c.parser
}

// GetProcessor returns the concurrent file processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetStore returns the extraction store.
func (c *Container) GetStore() *store.ExtractionStore {
	return c.store
}

// GetEngine returns the EMI reconstruction engine.
func (c *Container) GetEngine() *emi.Engine {
	return c.engine
}

// GetReporter returns the report generator.
func (c *Container) GetReporter() *report.ReportGenerator {
	return c.reporter
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
