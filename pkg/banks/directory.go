package banks

import (
	"strings"

	"jumpa_withdrawal_back/models"
)

// Directory maps bank names to one provider's bank codes. It is built once
// and only read afterwards, so it is safe to share between goroutines.
type Directory struct {
	name    string
	entries []models.BankDirectoryEntry
	aliases map[string]string
}

func NewDirectory(name string, entries []models.BankDirectoryEntry, aliases map[string]string) *Directory {
	d := &Directory{
		name:    name,
		entries: make([]models.BankDirectoryEntry, len(entries)),
		aliases: make(map[string]string, len(aliases)),
	}
	copy(d.entries, entries)
	for k, v := range aliases {
		d.aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return d
}

func (d *Directory) Name() string { return d.name }

// Lookup resolves a free-form bank name. We try, in order: exact match,
// entry name containing the input, input containing the entry name, and
// finally the alias table. The first hit wins.
func (d *Directory) Lookup(bankName string) (models.BankDirectoryEntry, bool) {
	input := strings.ToLower(strings.TrimSpace(bankName))
	if input == "" {
		return models.BankDirectoryEntry{}, false
	}

	if e, ok := d.exact(input); ok {
		return e, true
	}
	for _, e := range d.entries {
		if strings.Contains(strings.ToLower(e.Name), input) {
			return e, true
		}
	}
	for _, e := range d.entries {
		if strings.Contains(input, strings.ToLower(e.Name)) {
			return e, true
		}
	}
	if canonical, ok := d.aliases[input]; ok {
		return d.exact(strings.ToLower(canonical))
	}
	return models.BankDirectoryEntry{}, false
}

func (d *Directory) exact(lower string) (models.BankDirectoryEntry, bool) {
	for _, e := range d.entries {
		if strings.ToLower(e.Name) == lower {
			return e, true
		}
	}
	return models.BankDirectoryEntry{}, false
}
