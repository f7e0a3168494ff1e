package seed

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	packUsecases "github.com/orris-inc/memberhub/internal/application/pack/usecases"
)

// packFile is the on-disk layout of a package catalogue:
//
//	packs:
//	  - name: 十次卡
//	    packType: times
//	    price: "199"
//	    totalTimes: 10
//	    validDay: 90
type packFile struct {
	Packs []packEntry `yaml:"packs"`
}

type packEntry struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	PackType    string                 `yaml:"packType"`
	Category    string                 `yaml:"category"`
	Icon        string                 `yaml:"icon"`
	MemberPrice string                 `yaml:"memberPrice"`
	SalePrice   string                 `yaml:"salePrice"`
	Price       string                 `yaml:"price"`
	TotalTimes  *int                   `yaml:"totalTimes"`
	ValidDay    int                    `yaml:"validDay"`
	State       string                 `yaml:"state"`
	Position    int                    `yaml:"position"`
	Payload     map[string]interface{} `yaml:"payload"`
}

// ParsePackFile decodes a YAML catalogue into create commands. Prices are
// quoted strings so they keep their exact decimal value.
func ParsePackFile(r io.Reader) ([]packUsecases.CreatePackCommand, error) {
	var f packFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode pack file: %w", err)
	}

	cmds := make([]packUsecases.CreatePackCommand, 0, len(f.Packs))
	for i, e := range f.Packs {
		if e.Name == "" {
			return nil, fmt.Errorf("packs[%d]: name is required", i)
		}

		memberPrice, err := parseMoney(e.MemberPrice)
		if err != nil {
			return nil, fmt.Errorf("packs[%d] memberPrice: %w", i, err)
		}
		salePrice, err := parseMoney(e.SalePrice)
		if err != nil {
			return nil, fmt.Errorf("packs[%d] salePrice: %w", i, err)
		}
		price, err := parseMoney(e.Price)
		if err != nil {
			return nil, fmt.Errorf("packs[%d] price: %w", i, err)
		}

		cmds = append(cmds, packUsecases.CreatePackCommand{
			Name:        e.Name,
			Description: e.Description,
			PackType:    e.PackType,
			Category:    e.Category,
			Icon:        e.Icon,
			MemberPrice: memberPrice,
			SalePrice:   salePrice,
			Price:       price,
			TotalTimes:  e.TotalTimes,
			ValidDay:    e.ValidDay,
			State:       e.State,
			Position:    e.Position,
			Payload:     e.Payload,
		})
	}
	return cmds, nil
}

func parseMoney(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
