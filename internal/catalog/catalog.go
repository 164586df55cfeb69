// Package catalog holds the static car → model → category → details catalog.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Category groups the details of one vehicle system, e.g. "Cooling".
type Category struct {
	Name    string
	Details []string
}

// Model is one model of a car with its categories in document order.
type Model struct {
	Name       string
	Categories []Category
}

// Car is one car brand with its models in document order.
type Car struct {
	Name   string
	Models []Model
}

// Catalog keeps the order of the JSON document, which is the order options are
// offered in. It is not modified after decoding.
type Catalog struct {
	Cars []Car
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ReadFile loads a catalog document from disk.
func ReadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

// CarNames lists the cars in document order.
func (c *Catalog) CarNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.Cars))
	for i, car := range c.Cars {
		names[i] = car.Name
	}
	return names
}

// ModelNames lists the models of car, empty when car is unknown.
func (c *Catalog) ModelNames(car string) []string {
	entry, ok := c.car(car)
	if !ok {
		return nil
	}
	names := make([]string, len(entry.Models))
	for i, m := range entry.Models {
		names[i] = m.Name
	}
	return names
}

// DetailsFor flattens every category of car/model into one list, keeping order
// and duplicates. Unknown or empty keys give an empty list.
func (c *Catalog) DetailsFor(car, model string) []string {
	if car == "" || model == "" {
		return []string{}
	}
	entry, ok := c.car(car)
	if !ok {
		return []string{}
	}
	details := []string{}
	for _, m := range entry.Models {
		if m.Name != model {
			continue
		}
		for _, cat := range m.Categories {
			details = append(details, cat.Details...)
		}
		break
	}
	return details
}

func (c *Catalog) car(name string) (Car, bool) {
	if c == nil || name == "" {
		return Car{}, false
	}
	for _, car := range c.Cars {
		if car.Name == name {
			return car, true
		}
	}
	return Car{}, false
}

// UnmarshalJSON decodes the nested objects key by key so document order survives.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	var cars []Car
	err := decodeObject(dec, func(name string) error {
		car := Car{Name: name}
		err := decodeObject(dec, func(modelName string) error {
			model := Model{Name: modelName}
			err := decodeObject(dec, func(category string) error {
				var details []string
				if err := dec.Decode(&details); err != nil {
					return fmt.Errorf("%s/%s/%s: %w", name, modelName, category, err)
				}
				model.Categories = append(model.Categories, Category{Name: category, Details: details})
				return nil
			})
			if err != nil {
				return err
			}
			car.Models = append(car.Models, model)
			return nil
		})
		if err != nil {
			return err
		}
		cars = append(cars, car)
		return nil
	})
	if err != nil {
		return err
	}
	c.Cars = cars
	return nil
}

// decodeObject reads one JSON object and calls fn for each key with the decoder
// positioned on the key's value.
func decodeObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	// Closing brace
	_, err = dec.Token()
	return err
}
