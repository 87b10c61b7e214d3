package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the catalog store. A postgres:// DSN goes through lib/pq;
// anything else is treated as a sqlite file (or ":memory:" in tests).
// The sqlite path also creates the schema and seeds demo data, mirroring
// what the migration tooling does for postgres deployments.
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// One connection keeps the foreign_keys pragma (and a :memory: DB)
		// on every statement.
		db.SetMaxOpenConns(1)
		if err := ensureSchema(db); err != nil {
			return nil, err
		}
		if err := seedIfEmpty(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Constraint names match the original migrations so the two stores stay
// interchangeable. Every foreign key is NO ACTION: deleting a referenced
// category, product, user or order must fail while dependents exist.
func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('admin','customer')),
  image TEXT,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  CONSTRAINT users_email_unique UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  CONSTRAINT categories_name_unique UNIQUE (name),
  CONSTRAINT categories_slug_unique UNIQUE (slug)
);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  slug TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  rating NUMERIC(3,1) NOT NULL DEFAULT 0,
  category_id INTEGER NOT NULL,
  height NUMERIC(10,2),
  length NUMERIC(10,2),
  weight NUMERIC(10,2),
  width NUMERIC(10,2),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  CONSTRAINT products_slug_unique UNIQUE (slug),
  CONSTRAINT products_category_id_categories_id_fk
    FOREIGN KEY (category_id) REFERENCES categories(id)
    ON DELETE NO ACTION ON UPDATE NO ACTION
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS product_images(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL,
  image TEXT NOT NULL,
  CONSTRAINT product_images_product_id_products_id_fk
    FOREIGN KEY (product_id) REFERENCES products(id)
    ON DELETE NO ACTION ON UPDATE NO ACTION
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL,
  user_id INTEGER NOT NULL,
  subtotal NUMERIC(10,2) NOT NULL,
  shipping_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
  total NUMERIC(10,2) NOT NULL,
  recipient_name TEXT NOT NULL,
  recipient_phone TEXT NOT NULL DEFAULT '',
  recipient_address TEXT NOT NULL,
  shipper_name TEXT NOT NULL DEFAULT '',
  shipper_phone TEXT NOT NULL DEFAULT '',
  shipper_address TEXT NOT NULL DEFAULT '',
  courier TEXT NOT NULL DEFAULT '',
  courier_service TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  CONSTRAINT orders_order_number_unique UNIQUE (order_number),
  CONSTRAINT orders_user_id_users_id_fk
    FOREIGN KEY (user_id) REFERENCES users(id)
    ON DELETE NO ACTION ON UPDATE NO ACTION
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category_name TEXT NOT NULL DEFAULT '',
  price NUMERIC(10,2) NOT NULL,
  height NUMERIC(10,2),
  length NUMERIC(10,2),
  weight NUMERIC(10,2),
  width NUMERIC(10,2),
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  CONSTRAINT order_items_order_id_orders_id_fk
    FOREIGN KEY (order_id) REFERENCES orders(id)
    ON DELETE NO ACTION ON UPDATE NO ACTION,
  CONSTRAINT order_items_product_id_products_id_fk
    FOREIGN KEY (product_id) REFERENCES products(id)
    ON DELETE NO ACTION ON UPDATE NO ACTION
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/categories/products")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(name,email,password,role) VALUES
	  ('Admin','admin@storefront.test',?,'admin'),
	  ('Sari','sari@storefront.test',?,'customer')`,
		hash("Passw0rd!"), hash("Passw0rd!"))

	tx.MustExec(`INSERT INTO categories(name,slug) VALUES
	  ('Furniture','furniture'),
	  ('Lighting','lighting'),
	  ('Textiles','textiles')`)

	tx.MustExec(`INSERT INTO products(slug,name,description,price,stock,rating,category_id,height,length,weight,width) VALUES
	  ('teak-coffee-table','Teak Coffee Table','Solid teak, hand finished',249.00,12,4.5,1,45.00,110.00,18.50,60.00),
	  ('rattan-armchair','Rattan Armchair','Woven rattan lounge chair',129.50,8,4.2,1,80.00,70.00,6.00,65.00),
	  ('brass-floor-lamp','Brass Floor Lamp','Adjustable brass floor lamp',89.99,20,4.8,2,150.00,30.00,4.20,30.00),
	  ('paper-pendant-shade','Paper Pendant Shade','Rice paper pendant shade',24.90,40,3.9,2,NULL,NULL,0.40,NULL),
	  ('ikat-throw-blanket','Ikat Throw Blanket','Handwoven ikat cotton throw',59.00,25,4.6,3,NULL,NULL,0.90,NULL)`)

	tx.MustExec(`INSERT INTO product_images(product_id,image) VALUES
	  (1,'products/teak-coffee-table/main.jpg'),
	  (1,'products/teak-coffee-table/side.jpg'),
	  (2,'products/rattan-armchair/main.jpg'),
	  (3,'products/brass-floor-lamp/main.jpg'),
	  (4,'products/paper-pendant-shade/main.jpg'),
	  (5,'products/ikat-throw-blanket/main.jpg')`)

	return tx.Commit()
}
