package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/conso-maestro/conso-sync/internal/apperror"
	"github.com/conso-maestro/conso-sync/internal/fakeremote"
	"github.com/conso-maestro/conso-sync/internal/inventory"
	"github.com/conso-maestro/conso-sync/internal/model"
	"github.com/conso-maestro/conso-sync/internal/recall"
)

const demoUserID = "demo-user"

var errUsage = errors.New("usage")

type app struct {
	inventory inventory.UseCase
	recalls   recall.UseCase
	out       io.Writer
	userID    string
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	if a.userID == "" {
		return errors.New("a user id is required (-user or CONSO_USER_ID)")
	}

	switch args[0] {
	case "list":
		return a.list(ctx, args[1:])
	case "advance":
		if len(args) != 2 {
			return errUsage
		}
		return a.advance(ctx, args[1])
	case "delete":
		if len(args) != 2 {
			return errUsage
		}
		return a.delete(ctx, args[1])
	case "recalls":
		return a.checkRecalls(ctx)
	default:
		return errUsage
	}
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	location := fs.String("location", "", "only show one storage place")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	items, err := a.inventory.FetchInventory(ctx, a.userID)
	if err != nil {
		return err
	}
	if *location != "" {
		loc, err := model.ParseStorageLocation(*location)
		if err != nil {
			return err
		}
		items = a.inventory.ItemsByLocation(a.userID, loc)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "no products")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDLC\tPLACE\tURGENCY\tNOTICE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID,
			item.Name,
			item.ExpirationDate.Format("02/01/2006"),
			item.StorageLocation,
			a.inventory.Classify(item),
			a.inventory.SelectResponse(item),
		)
	}
	return w.Flush()
}

func (a *app) advance(ctx context.Context, itemID string) error {
	item, err := a.find(ctx, itemID)
	if err != nil {
		return err
	}
	updated, err := a.inventory.AdvanceStorageLocation(ctx, a.userID, item)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s moved from %s to %s\n", updated.Name, item.StorageLocation, updated.StorageLocation)
	return nil
}

func (a *app) delete(ctx context.Context, itemID string) error {
	item, err := a.find(ctx, itemID)
	if err != nil {
		return err
	}
	if err := a.inventory.DeleteItem(ctx, a.userID, item); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s deleted\n", item.Name)
	return nil
}

// failureMessage is the line printed on stderr when a command fails.
func failureMessage(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindFetchFailed:
		return "could not reach the Conso Maestro service: " + err.Error()
	case apperror.KindUpdateFailed:
		return "the storage place was not changed: " + err.Error()
	case apperror.KindDeleteFailed:
		return "the product was not deleted: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func (a *app) find(ctx context.Context, itemID string) (model.InventoryItem, error) {
	items, err := a.inventory.FetchInventory(ctx, a.userID)
	if err != nil {
		return model.InventoryItem{}, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return model.InventoryItem{}, fmt.Errorf("product %s not found", itemID)
}

func (a *app) checkRecalls(ctx context.Context) error {
	res, err := a.recalls.FetchRecalls(ctx, a.userID)
	if err != nil {
		return err
	}
	if res.State == recall.NoRecallsFound {
		fmt.Fprintln(a.out, "no recalls found")
		return nil
	}
	for i, r := range res.Records {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "%s\n", r.Brand)
		fmt.Fprintf(a.out, "  category:        %s\n", r.Category)
		fmt.Fprintf(a.out, "  models:          %s\n", r.ModelReferences)
		fmt.Fprintf(a.out, "  identification:  %s\n", r.Identification)
		fmt.Fprintf(a.out, "  reason:          %s\n", r.Reason)
		fmt.Fprintf(a.out, "  risks:           %s\n", r.Risks)
		fmt.Fprintf(a.out, "  recommendations: %s\n", r.SanitaryRecommendation)
		fmt.Fprintf(a.out, "  details:         %s\n", r.RiskDescription)
		fmt.Fprintf(a.out, "  what to do:      %s\n", r.ConsumerAction)
	}
	return nil
}

// seedDemo fills the demo service with a few products around now.
func seedDemo(srv *fakeremote.Server, userID string, now time.Time) {
	day := func(offset int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, time.UTC)
	}
	srv.Seed(userID,
		model.InventoryItem{ID: "1", Name: "Yaourt nature", ExpirationDate: day(1), StorageLocation: model.Fridge},
		model.InventoryItem{ID: "2", Name: "Jambon blanc", ExpirationDate: day(3), StorageLocation: model.Fridge},
		model.InventoryItem{ID: "3", Name: "Petits pois", ExpirationDate: day(120), StorageLocation: model.Freezer},
		model.InventoryItem{ID: "4", Name: "Pâtes", ExpirationDate: day(300), StorageLocation: model.Pantry},
	)
	srv.SetRecalls(userID, []model.RecallRecord{{
		Category:               "Alimentation",
		Brand:                  "Fromagerie du Val",
		ModelReferences:        "Camembert 250g",
		Identification:         "Lot 4521",
		Reason:                 "Présence de Listeria monocytogenes",
		Risks:                  "Listériose",
		SanitaryRecommendation: "Consulter un médecin en cas de fièvre",
		RiskDescription:        "Incubation jusqu'à 8 semaines",
		ConsumerAction:         "Ne plus consommer",
	}})
}
