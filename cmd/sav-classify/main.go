package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/avenaparisshop/avena-sav-app/internal/adapters/rulestore"
	"github.com/avenaparisshop/avena-sav-app/internal/classifier"
	"github.com/avenaparisshop/avena-sav-app/internal/config"
	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/avenaparisshop/avena-sav-app/internal/learner"
	"github.com/avenaparisshop/avena-sav-app/internal/logging"
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/avenaparisshop/avena-sav-app/internal/utils"
	"go.uber.org/zap"
)

var (
	// Classification flags
	threshold  = flag.Float64("threshold", 0.35, "Score threshold for the spam verdict")
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
	rulesDB    = flag.String("rules-db", "", "SQLite database with learned rules")

	// Learning flags
	learnCSV = flag.String("learn-csv", "", "CSV export of confirmed spam to mine for new rules")
	apply    = flag.Bool("apply", false, "Apply mined rules instead of only printing them")

	// Output flags
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := loadConfig(logger)

	store, err := rules.NewStore(logger, cfg.GetRules().MaxPatternLength)
	if err != nil {
		logger.Fatal("Failed to build rule store", zap.Error(err))
	}

	var persisted *rulestore.SQLiteRuleStore
	if *rulesDB != "" {
		persisted, err = rulestore.NewSQLiteRuleStore(*rulesDB, logger)
		if err != nil {
			logger.Fatal("Failed to open rules database", zap.Error(err), zap.String("path", *rulesDB))
		}
		defer persisted.Close()

		if _, err := persisted.LoadInto(context.Background(), store); err != nil {
			logger.Fatal("Failed to load learned rules", zap.Error(err))
		}
	}

	if *learnCSV != "" {
		runLearn(store, persisted, logger)
		return
	}

	runClassify(cfg, store, logger)
}

// loadConfig builds the configuration from a file or the classification flags
func loadConfig(logger *zap.Logger) *config.Config {
	if *configFile != "" {
		cfg, err := config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
		return cfg
	}

	v := config.NewEmptyViper()
	v.Set("spam.threshold", *threshold)
	return config.NewFromViper(v)
}

// runClassify reads one email and prints the verdict
func runClassify(cfg *config.Config, store *rules.Store, logger *zap.Logger) {
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	from := msg.Header.Get("From")
	to := msg.Header.Get("To")
	subject := msg.Header.Get("Subject")

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}
	body := string(bodyBytes)

	senderName := ""
	senderEmail := from
	if addr, err := mail.ParseAddress(from); err == nil {
		senderName = addr.Name
		senderEmail = addr.Address
	}

	email := &core.Email{
		SenderEmail: senderEmail,
		SenderName:  senderName,
		To:          strings.Split(to, ","),
		Subject:     subject,
		Body:        body,
		Headers:     make(map[string][]string),
	}
	for k, v := range msg.Header {
		email.Headers[k] = v
	}

	processor := utils.NewTextProcessor(logger)
	engine := classifier.New(store, cfg.GetSpam(), processor, logger)
	service := core.NewClassifierService(engine, nil, nil, logger,
		false, time.Duration(0), cfg.GetFloat64("spam.threshold"), false, 0)

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s <%s>\n", senderName, senderEmail)
	fmt.Printf("To: %s\n", to)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body length: %d bytes\n", len(body))

	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Threshold: %.2f\n", cfg.GetFloat64("spam.threshold"))

	startTime := time.Now()
	result, err := service.AnalyzeEmail(context.Background(), email)
	if err != nil {
		logger.Fatal("Failed to classify email", zap.Error(err))
	}
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Is spam: %t\n", result.IsSpam)
	fmt.Printf("Score: %.4f\n", result.Score)
	fmt.Printf("Reason: %s\n", result.Reason)
	fmt.Printf("Processing time: %v\n", duration)
}

// runLearn mines a CSV export of confirmed spam for recurring senders,
// subject words and display-name words
func runLearn(store *rules.Store, persisted *rulestore.SQLiteRuleStore, logger *zap.Logger) {
	corpus, err := readCorpus(*learnCSV)
	if err != nil {
		logger.Fatal("Failed to read corpus", zap.Error(err), zap.String("file", *learnCSV))
	}
	logger.Info("Loaded spam corpus", zap.Int("messages", len(corpus)), zap.String("file", *learnCSV))

	miner := learner.New(store, logger)
	candidates := miner.Learn(corpus)

	fmt.Printf("\n=== Candidates ===\n")
	fmt.Printf("Domains (seen at least twice):\n")
	for _, c := range candidates.Domains {
		fmt.Printf("  %-40s %d\n", c.Value, c.Count)
	}
	fmt.Printf("Subject words:\n")
	for _, c := range candidates.SubjectWords {
		fmt.Printf("  %-40s %d\n", c.Value, c.Count)
	}
	fmt.Printf("Display-name words:\n")
	for _, c := range candidates.NameWords {
		fmt.Printf("  %-40s %d\n", c.Value, c.Count)
	}

	if !*apply {
		fmt.Printf("\nRe-run with -apply to add these rules.\n")
		return
	}

	applied, err := miner.Apply(candidates)
	if err != nil {
		logger.Fatal("Failed to apply mined rules", zap.Error(err))
	}

	fmt.Printf("\n=== Applied ===\n")
	fmt.Printf("Sender patterns: %d\n", len(applied.SenderPatterns))
	fmt.Printf("Subject patterns: %d\n", len(applied.SubjectPatterns))
	fmt.Printf("Name words: %d\n", len(applied.NameWords))
	fmt.Printf("Total new rules: %d\n", applied.Total())

	if persisted != nil {
		if err := persisted.SaveApplied(context.Background(), applied); err != nil {
			logger.Fatal("Failed to persist mined rules", zap.Error(err))
		}
		fmt.Printf("Persisted to %s\n", *rulesDB)
	} else {
		fmt.Printf("No -rules-db given, rules were not persisted.\n")
	}
}

// readCorpus parses a CSV export with a header row. Recognized columns are
// sender_email, sender_name and subject; other columns are ignored.
func readCorpus(path string) ([]learner.Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	emailCol, ok := cols["sender_email"]
	if !ok {
		return nil, fmt.Errorf("missing sender_email column")
	}
	nameCol, hasName := cols["sender_name"]
	subjectCol, hasSubject := cols["subject"]

	var corpus []learner.Message
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if emailCol >= len(record) {
			continue
		}
		msg := learner.Message{SenderEmail: strings.TrimSpace(record[emailCol])}
		if hasName && nameCol < len(record) {
			msg.SenderName = record[nameCol]
		}
		if hasSubject && subjectCol < len(record) {
			msg.Subject = record[subjectCol]
		}
		if msg.SenderEmail == "" {
			continue
		}
		corpus = append(corpus, msg)
	}
	return corpus, nil
}
