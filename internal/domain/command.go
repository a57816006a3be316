package domain

import (
	"encoding/json"
	"fmt"
)

// Operation is the action named by a request envelope.
type Operation string

const (
	OperationRegister Operation = "register"
	OperationUpdate   Operation = "update"
	OperationFindAll  Operation = "findAll"
)

// Command is the typed form of one request envelope. One variant exists per
// entity kind so dispatch matches on the variant instead of raw strings.
type Command interface {
	isCommand()
	Operation() Operation
}

type MaterialCommand struct {
	Op       Operation
	ShopName string
	Item     MaterialInput
}

type IngredientCommand struct {
	Op       Operation
	ShopName string
	Info     IngredientInput
	Recipe   []RecipeLine
}

type BaseItemCommand struct {
	Op       Operation
	ShopName string
	Info     BaseItemInput
	Recipe   []RecipeLine
}

type ProductCommand struct {
	Op       Operation
	ShopName string
	Info     ProductInput
	Recipe   []RecipeLine
}

type WholesalerCommand struct {
	Op       Operation
	ShopName string
	Info     WholesalerInput
}

func (MaterialCommand) isCommand()   {}
func (IngredientCommand) isCommand() {}
func (BaseItemCommand) isCommand()   {}
func (ProductCommand) isCommand()    {}
func (WholesalerCommand) isCommand() {}

func (c MaterialCommand) Operation() Operation   { return c.Op }
func (c IngredientCommand) Operation() Operation { return c.Op }
func (c BaseItemCommand) Operation() Operation   { return c.Op }
func (c ProductCommand) Operation() Operation    { return c.Op }
func (c WholesalerCommand) Operation() Operation { return c.Op }

type materialPayload struct {
	Item MaterialInput `json:"materialInfo"`
}

type ingredientPayload struct {
	Info   IngredientInput `json:"ingredientInfo"`
	Recipe []RecipeLine    `json:"recipe"`
}

type baseItemPayload struct {
	Info   BaseItemInput `json:"baseItemInfo"`
	Recipe []RecipeLine  `json:"recipe"`
}

type productPayload struct {
	Info   ProductInput `json:"productInfo"`
	Recipe []RecipeLine `json:"recipe"`
}

type wholesalerPayload struct {
	Info WholesalerInput `json:"wholesalerInfo"`
}

func parseOperation(op string) (Operation, error) {
	switch Operation(op) {
	case OperationRegister, OperationUpdate, OperationFindAll:
		return Operation(op), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}

// ParseCommand decodes a request envelope into its typed command.
func ParseCommand(foodType, operation, shopName string, payload json.RawMessage) (Command, error) {
	op, err := parseOperation(operation)
	if err != nil {
		return nil, err
	}

	decode := func(v interface{}) error {
		if op == OperationFindAll {
			return nil
		}
		if len(payload) == 0 {
			return fmt.Errorf("%w: missing payload for %s", ErrInvalidInput, operation)
		}
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil
	}

	switch FoodType(foodType) {
	case FoodTypeMaterial:
		var p materialPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return MaterialCommand{Op: op, ShopName: shopName, Item: p.Item}, nil
	case FoodTypeIngredient:
		var p ingredientPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return IngredientCommand{Op: op, ShopName: shopName, Info: p.Info, Recipe: p.Recipe}, nil
	case FoodTypeBaseItem:
		var p baseItemPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return BaseItemCommand{Op: op, ShopName: shopName, Info: p.Info, Recipe: p.Recipe}, nil
	case FoodTypeProduct:
		var p productPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return ProductCommand{Op: op, ShopName: shopName, Info: p.Info, Recipe: p.Recipe}, nil
	case FoodTypeWholesaler:
		var p wholesalerPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return WholesalerCommand{Op: op, ShopName: shopName, Info: p.Info}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFoodType, foodType)
}
