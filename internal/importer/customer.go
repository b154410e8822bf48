// =============================================================================
// Monarch Importer - Customer List Import
// =============================================================================
//
// Converts a CRM customer export into 758-byte Monarch customer records.
// The upload is either a single delimited file of customer rows, or a ZIP
// container holding a customer file plus an optional user/e-mail file. When
// the user file is present, customer contact e-mails are backfilled by
// joining on the contact/user identifier.
//
// Customer imports never touch the Monarch directory service: the output of
// this import is what populates it.
//
// =============================================================================

package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/monarch-importer/internal/config"
	"github.com/ginjaninja78/monarch-importer/internal/csvparser"
	"github.com/ginjaninja78/monarch-importer/internal/layout"
	"github.com/ginjaninja78/monarch-importer/internal/rowparser"
	"github.com/ginjaninja78/monarch-importer/internal/types"
	"github.com/ginjaninja78/monarch-importer/pkg/logger"
	"github.com/ginjaninja78/monarch-importer/pkg/utils"
)

// CustomerImporter orchestrates one customer-list import run.
type CustomerImporter struct {
	cfg *config.Config

	// OnRecordEncoded, when set, is called once per encoded record.
	OnRecordEncoded RecordObserver
}

// NewCustomerImporter creates a fresh importer for one run.
func NewCustomerImporter(cfg *config.Config) *CustomerImporter {
	return &CustomerImporter{cfg: cfg}
}

// ImportFile decodes the input (a .csv or a .zip container) and runs the
// import. Unsupported formats and unparseable files are batch-fatal.
func (ci *CustomerImporter) ImportFile(path string) (result types.Result) {
	defer recoverToResult(&result)

	var customers, users []types.RawRow

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := csvparser.Parse(path, ci.cfg.CSV)
		if err != nil {
			return failure("failed to parse customer file: %v", err)
		}
		customers = data.Rows

	case ".zip":
		members, err := utils.ExtractArchive(path)
		if err != nil {
			return failure("failed to open archive: %v", err)
		}
		for _, m := range members {
			data, err := csvparser.ParseReader(bytes.NewReader(m.Data), ci.cfg.CSV)
			if err != nil {
				return failure("failed to parse archive member %s: %v", m.Name, err)
			}
			switch m.Kind {
			case "customer":
				customers = append(customers, data.Rows...)
			case "user":
				users = append(users, data.Rows...)
			}
		}
		if customers == nil {
			return failure("archive contains no customer file")
		}

	default:
		return failure("unsupported file format: %s", filepath.Ext(path))
	}

	return ci.ImportRows(customers, users)
}

// ImportRows runs the import on already-decoded rows. users may be nil.
func (ci *CustomerImporter) ImportRows(customers, users []types.RawRow) (result types.Result) {
	defer recoverToResult(&result)

	log := logger.ForRun("customer", "")

	if len(customers) == 0 {
		return failure("customer file contains no rows")
	}

	// Build the user id -> e-mail join table.
	emails := make(map[string]string, len(users))
	for _, user := range users {
		id := rowparser.Lookup(user, rowparser.SynContactID)
		email := rowparser.Lookup(user, rowparser.SynEmail)
		if id != "" && email != "" {
			emails[id] = email
		}
	}

	instances := make([]layout.Instance, 0, len(customers))
	emailsMatched := 0

	for _, row := range customers {
		normalized := rowparser.NormalizeCustomer(row)
		inst := layout.MapCustomer(normalized)

		// Backfill the contact e-mail from the users file when the
		// customer row itself carried none.
		if inst["Contact-email"] == "" {
			contactID := rowparser.Lookup(normalized, rowparser.SynContactID)
			if email, ok := emails[contactID]; ok {
				inst["Contact-email"] = email
				emailsMatched++
			}
		}

		instances = append(instances, inst)
		if ci.OnRecordEncoded != nil {
			ci.OnRecordEncoded("customer", inst)
		}
	}

	output := layout.EncodeBatch(instances, layout.CustomerLayout, layout.WriteDefined)

	log.Info("customer import complete",
		"customers", len(instances),
		"users", len(users),
		"emails_matched", emailsMatched)

	return types.Result{
		Success: true,
		Message: fmt.Sprintf("Processed %d customers (%d users, %d e-mails matched)",
			len(instances), len(users), emailsMatched),
		Output: output,
		Summary: types.Summary{
			RowsParsed:         len(customers) + len(users),
			RecordsEncoded:     len(instances),
			CustomersProcessed: len(instances),
			UsersProcessed:     len(users),
			EmailsMatched:      emailsMatched,
		},
	}
}
