package validate

import (
	"strings"

	"storeadmin/internal/domain"
)

const (
	required = "is required"
	maxName  = 64
	maxText  = 2000
)

// Each checker normalizes the input in place and returns the first failing
// field as a *domain.ValidationError.

func Store(in *domain.StoreInput) error {
	var ok bool
	if in.Name, ok = Text(in.Name, maxName); !ok {
		return domain.Invalid("name", required)
	}
	return nil
}

func Billboard(in *domain.BillboardInput) error {
	var ok bool
	if in.Label, ok = Text(in.Label, maxName); !ok {
		return domain.Invalid("label", required)
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return domain.Invalid("imageUrl", required)
	}
	if in.ImageURL, ok = ImageURL(in.ImageURL); !ok {
		return domain.Invalid("imageUrl", "is too long")
	}
	return nil
}

func Category(in *domain.CategoryInput) error {
	var ok bool
	if in.Name, ok = Text(in.Name, maxName); !ok {
		return domain.Invalid("name", required)
	}
	if in.BillboardID, ok = ID(in.BillboardID); !ok {
		return domain.Invalid("billboardId", required)
	}
	return nil
}

func Size(in *domain.SizeInput) error {
	var ok bool
	if in.Name, ok = Text(in.Name, maxName); !ok {
		return domain.Invalid("name", required)
	}
	if in.Value, ok = Text(in.Value, maxName); !ok {
		return domain.Invalid("value", required)
	}
	return nil
}

func Color(in *domain.ColorInput) error {
	var ok bool
	if in.Name, ok = Text(in.Name, maxName); !ok {
		return domain.Invalid("name", required)
	}
	if strings.TrimSpace(in.Value) == "" {
		return domain.Invalid("value", required)
	}
	if in.Value, ok = HexColor(in.Value); !ok {
		return domain.Invalid("value", "must be a valid hex code")
	}
	return nil
}

func Product(in *domain.ProductInput) error {
	var ok bool
	if in.Name, ok = Text(in.Name, maxName); !ok {
		return domain.Invalid("name", required)
	}
	if in.Description, ok = Text(in.Description, maxText); !ok {
		return domain.Invalid("description", required)
	}
	if !in.Price.IsPositive() {
		return domain.Invalid("price", "must be positive")
	}
	if in.AvailableQty < 1 {
		return domain.Invalid("availableQty", "must be positive")
	}
	if len(in.Images) == 0 {
		return domain.Invalid("images", required)
	}
	for i := range in.Images {
		if in.Images[i].URL, ok = ImageURL(in.Images[i].URL); !ok {
			return domain.Invalid("images", "need a non-empty url")
		}
	}
	if in.CategoryID, ok = ID(in.CategoryID); !ok {
		return domain.Invalid("categoryId", required)
	}
	if in.SizeID, ok = ID(in.SizeID); !ok {
		return domain.Invalid("sizeId", required)
	}
	if in.ColorID, ok = ID(in.ColorID); !ok {
		return domain.Invalid("colorId", required)
	}
	in.Price = in.Price.Round(2)
	return nil
}

func Order(in *domain.OrderInput) error {
	var ok bool
	if strings.TrimSpace(in.Phone) != "" {
		if in.Phone, ok = Phone(in.Phone); !ok {
			return domain.Invalid("phone", "is not a phone number")
		}
	}
	in.Address = strings.TrimSpace(in.Address)
	if len(in.Address) > maxText {
		return domain.Invalid("address", "is too long")
	}
	if len(in.Items) == 0 {
		return domain.Invalid("orderItems", required)
	}
	for i := range in.Items {
		if in.Items[i].ProductID, ok = ID(in.Items[i].ProductID); !ok {
			return domain.Invalid("orderItems", "need a productId")
		}
		switch q := in.Items[i].Quantity; {
		case q < 0:
			return domain.Invalid("orderItems", "quantity must be positive")
		case q == 0:
			in.Items[i].Quantity = 1
		}
	}
	return nil
}
