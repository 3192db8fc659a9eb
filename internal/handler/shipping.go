package handler

import "net/http"

type shippingCostResponse struct {
	AddressID    string  `json:"address_id"`
	ProvinceCode string  `json:"province_code"`
	ProvinceName string  `json:"province_name"`
	Amount       float64 `json:"amount"`
}

// shippingCost resolves the delivery fee for an address by looking up the
// flat rate of the address's province.
func (h *Handler) shippingCost(w http.ResponseWriter, r *http.Request) {
	addr, err := h.addresses.GetByID(r.Context(), r.PathValue("addressID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	cost, err := h.shipping.ResolveByProvince(r.Context(), addr.ProvinceCode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shippingCostResponse{
		AddressID:    addr.ID,
		ProvinceCode: cost.ProvinceCode,
		ProvinceName: addr.ProvinceName,
		Amount:       cost.Amount.InexactFloat64(),
	})
}
