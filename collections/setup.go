package collections

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"quotationdesk/services"
)

// Setup programmatically creates/ensures the recent_files collection exists.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, services.RecentFilesCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "path", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "action",
			Required:  true,
			Values:    []string{services.RecentActionSaved, services.RecentActionLoaded},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "quotation_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.NumberField{Name: "grand_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "last_used", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_recent_files_path", true, "path", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug().Str("collection", name).Msg("collection already exists, skipping creation")
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatal().Err(err).Str("collection", name).Msg("failed to create collection")
	}

	log.Info().Str("collection", name).Str("id", collection.Id).Msg("created collection")
	return collection
}
