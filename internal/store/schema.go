package store

// Schema v1 - snapshot tables and lookup indexes.
// steps, ingredients and tags hold list text; see Recipe.
const schemaV1 = `
CREATE TABLE recipes (
  id INTEGER PRIMARY KEY,
  name TEXT,
  minutes INTEGER,
  contributor_id INTEGER,
  submitted TEXT,
  n_steps INTEGER,
  steps TEXT,
  description TEXT,
  ingredients TEXT,
  n_ingredients INTEGER,
  tags TEXT
);

CREATE TABLE recipe_ingredients (
  recipe_id INTEGER,
  ingredient TEXT
);

CREATE INDEX idx_recipes_name ON recipes(name);
CREATE INDEX idx_recipes_min ON recipes(minutes);
CREATE INDEX idx_ri_ing ON recipe_ingredients(ingredient);
CREATE INDEX idx_ri_rec ON recipe_ingredients(recipe_id);

CREATE TABLE interactions (
  user_id INTEGER,
  recipe_id INTEGER,
  date TEXT,
  rating REAL,
  u INTEGER,
  i INTEGER,
  source TEXT
);
`

// Tables lists the snapshot tables in creation order
var Tables = []string{"recipes", "recipe_ingredients", "interactions"}

// Indexes lists the lookup indexes created with the schema
var Indexes = []string{"idx_recipes_name", "idx_recipes_min", "idx_ri_ing", "idx_ri_rec"}
