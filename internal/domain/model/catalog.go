package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Product — товар каталога.
type Product struct {
	ID                int64   `json:"id,omitempty"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Description2      string  `json:"description2"`
	Capacity          string  `json:"capacity"`
	Price             float64 `json:"price"`
	Brand             string  `json:"brand"`
	Category          string  `json:"category"`
	Warranty          string  `json:"warranty"`
	ResponsiblePerson string  `json:"responsiblePerson"`
	ImageURL1         string  `json:"imageUrl1"`
	ImageURL2         string  `json:"imageUrl2"`
	ImageURL3         string  `json:"imageUrl3"`
	ImageURL4         string  `json:"imageUrl4"`
	ImageURL5         string  `json:"imageUrl5"`
}

// ProductForm — черновик товара; цена хранится как введённый текст.
type ProductForm struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Description2      string `json:"description2"`
	Capacity          string `json:"capacity"`
	Price             string `json:"price"`
	Brand             string `json:"brand"`
	Category          string `json:"category"`
	Warranty          string `json:"warranty"`
	ResponsiblePerson string `json:"responsiblePerson"`
	ImageURL1         string `json:"imageUrl1"`
	ImageURL2         string `json:"imageUrl2"`
	ImageURL3         string `json:"imageUrl3"`
	ImageURL4         string `json:"imageUrl4"`
	ImageURL5         string `json:"imageUrl5"`
}

// ProductFormFrom заполняет черновик из существующего товара.
func ProductFormFrom(p Product) ProductForm {
	return ProductForm{
		Name:              p.Name,
		Description:       p.Description,
		Description2:      p.Description2,
		Capacity:          p.Capacity,
		Price:             strconv.FormatFloat(p.Price, 'f', -1, 64),
		Brand:             p.Brand,
		Category:          p.Category,
		Warranty:          p.Warranty,
		ResponsiblePerson: p.ResponsiblePerson,
		ImageURL1:         p.ImageURL1,
		ImageURL2:         p.ImageURL2,
		ImageURL3:         p.ImageURL3,
		ImageURL4:         p.ImageURL4,
		ImageURL5:         p.ImageURL5,
	}
}

// ToProduct преобразует черновик в тело запроса. Ошибка — если цена не число.
func (f ProductForm) ToProduct() (Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return Product{}, fmt.Errorf("некорректная цена %q: %w", f.Price, err)
	}
	return Product{
		Name:              f.Name,
		Description:       f.Description,
		Description2:      f.Description2,
		Capacity:          f.Capacity,
		Price:             price,
		Brand:             f.Brand,
		Category:          f.Category,
		Warranty:          f.Warranty,
		ResponsiblePerson: f.ResponsiblePerson,
		ImageURL1:         f.ImageURL1,
		ImageURL2:         f.ImageURL2,
		ImageURL3:         f.ImageURL3,
		ImageURL4:         f.ImageURL4,
		ImageURL5:         f.ImageURL5,
	}, nil
}

// Brand — бренд. Active присутствует не во всех ответах API.
type Brand struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// IsActive возвращает статус бренда; отсутствие поля считается активным.
func (b Brand) IsActive() bool {
	return b.Active == nil || *b.Active
}

// Category — категория товаров.
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// NameForm — черновик справочника из одного поля (бренды, категории).
type NameForm struct {
	Name string `json:"name"`
}
