package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/siddharthaBojanki/greenCart/app/services"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
)

// GraphQLController exposes a read-only catalogue query endpoint:
//
//	{ products { name offerPrice inStock } }
//	{ product(id: "...") { name price image } }
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController() (*GraphQLController, error) {
	catalogue := services.NewCatalogueService()

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod, ok := productOf(p.Source); ok {
						return prod["_id"], nil
					}
					return nil, nil
				},
			},
			"name":        jsonField("name", graphql.String),
			"description": jsonField("description", graphql.NewList(graphql.String)),
			"category":    jsonField("category", graphql.String),
			"price":       jsonField("price", graphql.Float),
			"offerPrice":  jsonField("offerPrice", graphql.Float),
			"image":       jsonField("image", graphql.NewList(graphql.String)),
			"inStock":     jsonField("inStock", graphql.Boolean),
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := catalogue.List(p.Context)
					if err != nil {
						return nil, err
					}
					return toMaps(products)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, err := catalogue.Find(p.Context, id)
					if err != nil {
						return nil, err
					}
					maps, err := toMaps([]interface{}{product})
					if err != nil || len(maps) == 0 {
						return nil, err
					}
					return maps[0], nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query executes a POSTed GraphQL document against the catalogue schema.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Fail(w, "Invalid GraphQL request")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}

// jsonField resolves a field from the map representation of a product.
func jsonField(key string, t graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if prod, ok := productOf(p.Source); ok {
				return prod[key], nil
			}
			return nil, nil
		},
	}
}

func productOf(source interface{}) (map[string]interface{}, bool) {
	m, ok := source.(map[string]interface{})
	return m, ok
}

// toMaps round-trips values through JSON so resolvers see the same field
// names the REST API serves.
func toMaps(v interface{}) ([]map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
