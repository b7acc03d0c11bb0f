package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/example/hamper-shop/internal/session"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidScript = errors.New("invalid order script")
	ErrUnknownItem   = errors.New("no cart item at position")
)

// Script is an order replayed through one session. Items are referred to by
// the 1-based position in which the script added them.
//
//	session: demo
//	steps:
//	  - hamper: {occasion: birthday, vibe: modern, packaging: gift-box, contents: [keychain]}
//	  - add: {product: premium-luxury-hamper, quantity: 2}
//	  - quantity: {item: 2, quantity: 3}
//	  - remove: 1
//	customer: {name: Asha, phone: "9800000000"}
type Script struct {
	Session  string                 `yaml:"session"`
	Steps    []Step                 `yaml:"steps"`
	Customer session.UpdateCustomer `yaml:"customer"`
}

// Step holds exactly one action.
type Step struct {
	Hamper   *session.ConfigureHamper `yaml:"hamper"`
	Add      *session.AddPrebuilt     `yaml:"add"`
	Quantity *ItemQuantity            `yaml:"quantity"`
	Remove   int                      `yaml:"remove"`
	Clear    bool                     `yaml:"clear"`
}

type ItemQuantity struct {
	Item     int `yaml:"item"`
	Quantity int `yaml:"quantity"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Hamper != nil, s.Add != nil, s.Quantity != nil, s.Remove != 0, s.Clear} {
		if set {
			n++
		}
	}
	return n
}

// ParseScript decodes a script and checks that every step has one action.
func ParseScript(r io.Reader) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	for i, st := range sc.Steps {
		if n := st.actions(); n != 1 {
			return nil, fmt.Errorf("%w: step %d has %d actions", ErrInvalidScript, i+1, n)
		}
		if st.Remove < 0 {
			return nil, fmt.Errorf("%w: step %d removes position %d", ErrInvalidScript, i+1, st.Remove)
		}
	}
	return &sc, nil
}

// Run applies the steps and then the customer details.
func (sc *Script) Run(ctx context.Context, s *session.Session) error {
	var added []string
	itemAt := func(pos int) (string, error) {
		if pos < 1 || pos > len(added) {
			return "", fmt.Errorf("%w %d", ErrUnknownItem, pos)
		}
		return added[pos-1], nil
	}

	for i, st := range sc.Steps {
		var err error
		switch {
		case st.Hamper != nil:
			item, addErr := s.ConfigureHamper(ctx, *st.Hamper)
			err = addErr
			if err == nil {
				added = append(added, item.ID)
			}
		case st.Add != nil:
			item, addErr := s.AddPrebuilt(ctx, *st.Add)
			err = addErr
			if err == nil {
				added = append(added, item.ID)
			}
		case st.Quantity != nil:
			var id string
			if id, err = itemAt(st.Quantity.Item); err == nil {
				err = s.UpdateQuantity(ctx, session.UpdateQuantity{ItemID: id, Quantity: st.Quantity.Quantity})
			}
		case st.Remove > 0:
			var id string
			if id, err = itemAt(st.Remove); err == nil {
				err = s.RemoveItem(ctx, session.RemoveItem{ItemID: id})
			}
		case st.Clear:
			err = s.ClearCart(ctx)
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	c := sc.Customer
	if c.Name == nil && c.Phone == nil && c.Email == nil && c.Address == nil {
		return nil
	}
	if _, err := s.UpdateCustomerDetails(ctx, c); err != nil {
		return fmt.Errorf("customer details: %w", err)
	}
	return nil
}
